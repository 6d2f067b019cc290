package seeds

import (
	"fmt"
	"os"

	"github.com/CivicLink/Civic311-Backend/internal/catalog"
	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// catalogFile mirrors the YAML layout of a seed file: jurisdictions with
// their services, attribute schemas, and list values.
type catalogFile struct {
	Jurisdictions []struct {
		ID       string `yaml:"jurisdiction_id"`
		Name     string `yaml:"name"`
		Services []struct {
			ServiceCode string   `yaml:"service_code"`
			ServiceName string   `yaml:"service_name"`
			Description string   `yaml:"description"`
			Keywords    []string `yaml:"keywords"`
			Attributes  []struct {
				Code                int    `yaml:"code"`
				Datatype            string `yaml:"datatype"`
				Required            bool   `yaml:"required"`
				Variable            bool   `yaml:"variable"`
				Order               int    `yaml:"order"`
				Description         string `yaml:"description"`
				DatatypeDescription string `yaml:"datatype_description"`
				Values              []struct {
					Key  string `yaml:"key"`
					Name string `yaml:"name"`
				} `yaml:"values"`
			} `yaml:"attributes"`
		} `yaml:"services"`
	} `yaml:"jurisdictions"`
}

// SeedFromFile loads a YAML catalog file and upserts its jurisdictions,
// services, and attribute schemas. The same creation-time invariants apply
// as on the admin API: list-typed attributes need at least one value.
func SeedFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		for _, j := range file.Jurisdictions {
			jurisdiction := catalog.Jurisdiction{ID: j.ID, Name: j.Name}
			if err := tx.Save(&jurisdiction).Error; err != nil {
				return fmt.Errorf("seeding jurisdiction %s: %w", j.ID, err)
			}

			for _, s := range j.Services {
				service := catalog.Service{
					ID:             uuid.New(),
					JurisdictionID: j.ID,
					ServiceCode:    s.ServiceCode,
					ServiceName:    s.ServiceName,
					Description:    s.Description,
					Keywords:       s.Keywords,
				}
				err := tx.Where("service_code = ?", s.ServiceCode).
					Assign(map[string]interface{}{
						"jurisdiction_id": j.ID,
						"service_name":    s.ServiceName,
						"description":     s.Description,
						"keywords":        pq.StringArray(s.Keywords),
					}).
					FirstOrCreate(&service).Error
				if err != nil {
					return fmt.Errorf("seeding service %s: %w", s.ServiceCode, err)
				}

				for _, a := range s.Attributes {
					datatype := catalog.AttributeDatatype(a.Datatype)
					if !datatype.IsValid() {
						return fmt.Errorf("service %s attribute %d: unknown datatype %q", s.ServiceCode, a.Code, a.Datatype)
					}
					if datatype.IsList() && len(a.Values) == 0 {
						return fmt.Errorf("service %s attribute %d: list-type attributes require at least one value", s.ServiceCode, a.Code)
					}

					attribute := catalog.ServiceAttribute{
						ID:        uuid.New(),
						ServiceID: service.ID,
						Code:      a.Code,
					}
					err := tx.Where("service_id = ? AND code = ?", service.ID, a.Code).
						Assign(map[string]interface{}{
							"datatype":             datatype,
							"required":             a.Required,
							"variable":             a.Variable,
							"display_order":        a.Order,
							"description":          a.Description,
							"datatype_description": a.DatatypeDescription,
						}).
						FirstOrCreate(&attribute).Error
					if err != nil {
						return fmt.Errorf("seeding attribute %d on %s: %w", a.Code, s.ServiceCode, err)
					}

					for _, v := range a.Values {
						value := catalog.AttributeValue{
							AttributeID: attribute.ID,
							ID:          v.Key,
							Name:        v.Name,
						}
						if err := tx.Save(&value).Error; err != nil {
							return fmt.Errorf("seeding value %s: %w", v.Key, err)
						}
					}
				}
			}
		}
		return nil
	})
}
