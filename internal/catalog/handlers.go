package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListJurisdictionsHandler(w http.ResponseWriter, r *http.Request) {
	var jurisdictions []Jurisdiction
	if err := db.DB.Order("id ASC").Find(&jurisdictions).Error; err != nil {
		http.Error(w, "Failed to fetch jurisdictions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jurisdictions)
}

func CreateJurisdictionHandler(w http.ResponseWriter, r *http.Request) {
	var input Jurisdiction
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.ID == "" {
		http.Error(w, "jurisdiction_id is required", http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&input).Error; err != nil {
		http.Error(w, "Failed to create jurisdiction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(input)
}

// ListServicesHandler returns the service catalog for one jurisdiction.
func ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	jurisdictionID := r.URL.Query().Get("jurisdiction_id")
	if jurisdictionID == "" {
		http.Error(w, "jurisdiction_id is required", http.StatusBadRequest)
		return
	}

	var services []Service
	if err := db.DB.Where("jurisdiction_id = ?", jurisdictionID).
		Order("service_code ASC").Find(&services).Error; err != nil {
		http.Error(w, "Failed to fetch services: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

// ServiceDefinitionHandler returns a service together with its ordered
// attribute schema and list values, which is everything a client needs to
// render the dynamic submission form.
func ServiceDefinitionHandler(w http.ResponseWriter, r *http.Request) {
	serviceCode := chi.URLParam(r, "serviceCode")

	service, err := FindServiceByCode(serviceCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch service: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

func CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		JurisdictionID string   `json:"jurisdiction_id"`
		ServiceCode    string   `json:"service_code"`
		ServiceName    string   `json:"service_name"`
		Description    string   `json:"description"`
		Keywords       []string `json:"keywords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.ServiceCode == "" || input.JurisdictionID == "" {
		http.Error(w, "service_code and jurisdiction_id are required", http.StatusBadRequest)
		return
	}

	var jurisdiction Jurisdiction
	if err := db.DB.First(&jurisdiction, "id = ?", input.JurisdictionID).Error; err != nil {
		http.Error(w, "Jurisdiction not found", http.StatusNotFound)
		return
	}

	service := Service{
		ID:             uuid.New(),
		JurisdictionID: input.JurisdictionID,
		ServiceCode:    input.ServiceCode,
		ServiceName:    input.ServiceName,
		Description:    input.Description,
		Keywords:       input.Keywords,
	}
	if err := db.DB.Create(&service).Error; err != nil {
		http.Error(w, "Failed to create service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(service)
}

type attributeInput struct {
	Code                int               `json:"code"`
	Datatype            AttributeDatatype `json:"datatype"`
	Required            bool              `json:"required"`
	Variable            bool              `json:"variable"`
	Order               int               `json:"order"`
	Description         string            `json:"description"`
	DatatypeDescription string            `json:"datatype_description"`
	Values              []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"values"`
}

// CreateAttributeHandler adds one attribute definition to a service.
// List-typed attributes must arrive with at least one selectable value;
// that invariant is enforced here, at creation time, never at submission
// time.
func CreateAttributeHandler(w http.ResponseWriter, r *http.Request) {
	serviceCode := chi.URLParam(r, "serviceCode")

	var input attributeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !input.Datatype.IsValid() {
		http.Error(w, "Unknown attribute datatype: "+string(input.Datatype), http.StatusBadRequest)
		return
	}
	if input.Datatype.IsList() && len(input.Values) == 0 {
		http.Error(w, "List-type attributes require at least one value", http.StatusBadRequest)
		return
	}

	var service Service
	if err := db.DB.First(&service, "service_code = ?", serviceCode).Error; err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	var existing ServiceAttribute
	if err := db.DB.First(&existing, "service_id = ? AND code = ?", service.ID, input.Code).Error; err == nil {
		http.Error(w, "Attribute code already exists for this service", http.StatusConflict)
		return
	}

	attribute := ServiceAttribute{
		ID:                  uuid.New(),
		ServiceID:           service.ID,
		Code:                input.Code,
		Datatype:            input.Datatype,
		Required:            input.Required,
		Variable:            input.Variable,
		Order:               input.Order,
		Description:         input.Description,
		DatatypeDescription: input.DatatypeDescription,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attribute).Error; err != nil {
			return err
		}
		for _, v := range input.Values {
			value := AttributeValue{
				AttributeID: attribute.ID,
				ID:          v.Key,
				Name:        v.Name,
			}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Failed to create attribute", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(attribute)
}

// UpdateAttributeHandler patches the mutable parts of an attribute
// definition and optionally appends list values. The datatype itself is
// immutable once created; historic submissions were validated against it.
func UpdateAttributeHandler(w http.ResponseWriter, r *http.Request) {
	serviceCode := chi.URLParam(r, "serviceCode")
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		http.Error(w, "Attribute code must be an integer", http.StatusBadRequest)
		return
	}

	var input struct {
		Required            *bool   `json:"required"`
		Variable            *bool   `json:"variable"`
		Order               *int    `json:"order"`
		Description         *string `json:"description"`
		DatatypeDescription *string `json:"datatype_description"`
		Values              []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	attribute, err := findAttribute(serviceCode, code)
	if err != nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}

	updates := map[string]interface{}{}
	if input.Required != nil {
		updates["required"] = *input.Required
	}
	if input.Variable != nil {
		updates["variable"] = *input.Variable
	}
	if input.Order != nil {
		updates["display_order"] = *input.Order
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DatatypeDescription != nil {
		updates["datatype_description"] = *input.DatatypeDescription
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(attribute).Updates(updates).Error; err != nil {
				return err
			}
		}
		for _, v := range input.Values {
			value := AttributeValue{AttributeID: attribute.ID, ID: v.Key, Name: v.Name}
			if err := tx.Save(&value).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Failed to update attribute", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteAttributeHandler removes an attribute definition and cascades its
// catalog values in the same transaction.
func DeleteAttributeHandler(w http.ResponseWriter, r *http.Request) {
	serviceCode := chi.URLParam(r, "serviceCode")
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		http.Error(w, "Attribute code must be an integer", http.StatusBadRequest)
		return
	}

	attribute, err := findAttribute(serviceCode, code)
	if err != nil {
		http.Error(w, "Attribute not found", http.StatusNotFound)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", attribute.ID).Delete(&AttributeValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(attribute).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete attribute", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func findAttribute(serviceCode string, code int) (*ServiceAttribute, error) {
	var service Service
	if err := db.DB.First(&service, "service_code = ?", serviceCode).Error; err != nil {
		return nil, err
	}

	var attribute ServiceAttribute
	if err := db.DB.First(&attribute, "service_id = ? AND code = ?", service.ID, code).Error; err != nil {
		return nil, err
	}
	return &attribute, nil
}
