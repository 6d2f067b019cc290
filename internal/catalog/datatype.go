package catalog

// AttributeDatatype is the wire datatype of one dynamic service attribute.
// Values follow the Open311 service-definition vocabulary.
type AttributeDatatype string

const (
	DatatypeString          AttributeDatatype = "string"
	DatatypeNumber          AttributeDatatype = "number"
	DatatypeDatetime        AttributeDatatype = "datetime"
	DatatypeText            AttributeDatatype = "text"
	DatatypeSingleValueList AttributeDatatype = "singlevaluelist"
	DatatypeMultiValueList  AttributeDatatype = "multivaluelist"
)

func (d AttributeDatatype) IsValid() bool {
	switch d {
	case DatatypeString, DatatypeNumber, DatatypeDatetime, DatatypeText,
		DatatypeSingleValueList, DatatypeMultiValueList:
		return true
	}
	return false
}

// IsList reports whether the datatype selects from enumerated catalog values.
func (d AttributeDatatype) IsList() bool {
	return d == DatatypeSingleValueList || d == DatatypeMultiValueList
}
