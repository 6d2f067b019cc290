package requests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/CivicLink/Civic311-Backend/internal/db"
	"github.com/CivicLink/Civic311-Backend/internal/permission"
	"github.com/CivicLink/Civic311-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxSubmissionBytes = 1 << 20 // 1 MiB of form data is plenty

// CreateRequestHandler accepts a form-encoded citizen submission, runs the
// validation pipeline, and persists the request with its attributes blob.
// Nothing is written when any step fails.
func CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	fields, err := ParseFormBody(string(body))
	if err != nil {
		http.Error(w, "Invalid form body: "+err.Error(), http.StatusBadRequest)
		return
	}

	jurisdictionID := r.URL.Query().Get("jurisdiction_id")
	if jurisdictionID == "" {
		jurisdictionID = FieldValue(fields, "jurisdiction_id")
	}
	if jurisdictionID == "" {
		http.Error(w, "jurisdiction_id is required", http.StatusBadRequest)
		return
	}

	sub := Submission{
		JurisdictionID: jurisdictionID,
		ServiceCode:    FieldValue(fields, "service_code"),
		Lat:            FieldValue(fields, "lat"),
		Long:           FieldValue(fields, "long"),
		AddressString:  FieldValue(fields, "address_string"),
		AddressID:      FieldValue(fields, "address_id"),
		Zipcode:        FieldValue(fields, "zipcode"),
		Email:          FieldValue(fields, "email"),
		DeviceID:       FieldValue(fields, "device_id"),
		AccountID:      FieldValue(fields, "account_id"),
		FirstName:      FieldValue(fields, "first_name"),
		LastName:       FieldValue(fields, "last_name"),
		Phone:          FieldValue(fields, "phone"),
		Description:    FieldValue(fields, "description"),
		MediaURL:       FieldValue(fields, "media_url"),
		Fields:         fields,
	}

	service, selections, err := V.Validate(sub)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	blob, err := EncodeSelections(selections)
	if err != nil {
		http.Error(w, "Failed to encode attributes", http.StatusInternalServerError)
		return
	}

	lat, lng, err := parseCoordinates(sub.Lat, sub.Long)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	request := ServiceRequest{
		ID:             uuid.New(),
		JurisdictionID: sub.JurisdictionID,
		ServiceID:      service.ID,
		ServiceCode:    service.ServiceCode,
		ServiceName:    service.ServiceName,
		Status:         StatusOpen,
		Description:    sub.Description,
		AddressString:  sub.AddressString,
		AddressID:      sub.AddressID,
		Zipcode:        sub.Zipcode,
		Lat:            lat,
		Long:           lng,
		Email:          sub.Email,
		DeviceID:       sub.DeviceID,
		AccountID:      sub.AccountID,
		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		Phone:          sub.Phone,
		MediaURL:       sub.MediaURL,
		Attributes:     blob,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		http.Error(w, "Failed to create service request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ProjectPublic(&request))
}

// ListRequestsHandler returns a jurisdiction's requests. Whether rows are
// projected publicly or sensitively is decided once per call, with a single
// permission check applied uniformly to every row returned.
func ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	jurisdictionID := r.URL.Query().Get("jurisdiction_id")
	if jurisdictionID == "" {
		http.Error(w, "jurisdiction_id is required", http.StatusBadRequest)
		return
	}

	query := db.DB.Where("jurisdiction_id = ?", jurisdictionID)
	if status := r.URL.Query().Get("status"); status != "" {
		if !Status(status).IsValid() {
			http.Error(w, "Unknown status: "+status, http.StatusBadRequest)
			return
		}
		query = query.Where("status = ?", status)
	}

	page, pageSize := pagination(r)

	var rows []ServiceRequest
	if err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&rows).Error; err != nil {
		http.Error(w, "Failed to fetch requests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if callerSeesSensitive(r, jurisdictionID) {
		views := make([]SensitiveView, 0, len(rows))
		for i := range rows {
			views = append(views, ProjectSensitive(&rows[i]))
		}
		json.NewEncoder(w).Encode(views)
		return
	}

	views := make([]PublicView, 0, len(rows))
	for i := range rows {
		views = append(views, ProjectPublic(&rows[i]))
	}
	json.NewEncoder(w).Encode(views)
}

func GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		http.Error(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	var request ServiceRequest
	if err := db.DB.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Service request not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if callerSeesSensitive(r, request.JurisdictionID) {
		json.NewEncoder(w).Encode(ProjectSensitive(&request))
		return
	}
	json.NewEncoder(w).Encode(ProjectPublic(&request))
}

// UpdateRequestHandler lets staff patch triage fields. The route is gated
// on edit permissions, so the response is always the sensitive view.
func UpdateRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		http.Error(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status            *Status    `json:"status"`
		Priority          *Priority  `json:"priority"`
		StatusNotes       *string    `json:"status_notes"`
		AgencyResponsible *string    `json:"agency_responsible"`
		AgencyEmail       *string    `json:"agency_email"`
		ServiceNotice     *string    `json:"service_notice"`
		ExpectedAt        *time.Time `json:"expected_datetime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Status != nil && !input.Status.IsValid() {
		http.Error(w, "Unknown status: "+string(*input.Status), http.StatusBadRequest)
		return
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		http.Error(w, "Unknown priority: "+string(*input.Priority), http.StatusBadRequest)
		return
	}

	var request ServiceRequest
	if err := db.DB.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Service request not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if request.JurisdictionID != r.URL.Query().Get("jurisdiction_id") {
		http.Error(w, "Request does not belong to jurisdiction", http.StatusForbidden)
		return
	}

	updates := map[string]interface{}{}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.StatusNotes != nil {
		updates["status_notes"] = *input.StatusNotes
	}
	if input.AgencyResponsible != nil {
		updates["agency_responsible"] = *input.AgencyResponsible
	}
	if input.AgencyEmail != nil {
		updates["agency_email"] = *input.AgencyEmail
	}
	if input.ServiceNotice != nil {
		updates["service_notice"] = *input.ServiceNotice
	}
	if input.ExpectedAt != nil {
		updates["expected_at"] = *input.ExpectedAt
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&request).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update request", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProjectSensitive(&request))
}

// callerSeesSensitive makes the one binary visibility decision for a
// read/list call. Missing token, missing checker, or a failing auth
// service all resolve to the public view.
func callerSeesSensitive(r *http.Request, jurisdictionID string) bool {
	if Perms == nil {
		return false
	}
	token, ok := utils.GetBearerTokenFromContext(r.Context())
	if !ok {
		return false
	}
	return Perms.HasAny(r.Context(), token, jurisdictionID, permission.ViewSensitive)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var oob *OutOfBoundsError
	if errors.As(err, &oob) {
		http.Error(w, oob.Error(), http.StatusUnprocessableEntity)
		return
	}
	// Everything else the validator surfaces is client-attributable.
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func pagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
