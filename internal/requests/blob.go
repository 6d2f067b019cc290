package requests

import (
	"encoding/json"

	"github.com/CivicLink/Civic311-Backend/internal/catalog"
	"gorm.io/datatypes"
)

// KeyedValue is one selected value inside an attribute selection. For list
// datatypes Key is the catalog-entry id and Name its display text; for
// scalar datatypes Key is the schema code itself and Name the raw
// submitted value. One uniform shape for storage and serialization.
type KeyedValue struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// AttributeSelection is the schema-snapshotted record of one submitted
// attribute: the schema row it was validated against plus the selected
// values. An ordered list of these is what gets serialized into the
// request's attributes blob.
type AttributeSelection struct {
	Code                int                       `json:"code"`
	Variable            bool                      `json:"variable"`
	Datatype            catalog.AttributeDatatype `json:"datatype"`
	Required            bool                      `json:"required"`
	Description         string                    `json:"description"`
	Order               int                       `json:"order"`
	DatatypeDescription string                    `json:"datatype_description"`
	Values              []KeyedValue              `json:"values"`
}

// EncodeSelections serializes the full selection list in one shot; the
// blob is written all-or-nothing, never partially.
func EncodeSelections(selections []AttributeSelection) (datatypes.JSON, error) {
	if selections == nil {
		selections = []AttributeSelection{}
	}
	raw, err := json.Marshal(selections)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func DecodeSelections(blob datatypes.JSON) ([]AttributeSelection, error) {
	if len(blob) == 0 {
		return []AttributeSelection{}, nil
	}
	var selections []AttributeSelection
	if err := json.Unmarshal(blob, &selections); err != nil {
		return nil, err
	}
	return selections, nil
}
