// Package dto defines data transfer objects for the audits feature's HTTP transport layer.
package dto

import (
	"encoding/json"
	"time"

	"template_backend/internal/feature/audits/domain/entity"
)

// ReadAudit is the audit record payload returned by the list endpoint.
// OldData and NewData are emitted as raw JSON so clients receive the
// captured state as objects rather than escaped strings.
type ReadAudit struct {
	UUID      string           `json:"uuid"`
	Entity    string           `json:"entity"`
	Method    string           `json:"method"`
	URL       string           `json:"url"`
	OldData   *json.RawMessage `json:"oldData"`
	NewData   *json.RawMessage `json:"newData"`
	UserUUID  *string          `json:"userUuid"`
	IP        string           `json:"ip"`
	UserAgent string           `json:"userAgent"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewReadAudit maps an audit entity to its response shape.
func NewReadAudit(a *entity.Audit) ReadAudit {
	return ReadAudit{
		UUID:      a.UUID,
		Entity:    a.Entity,
		Method:    a.Method,
		URL:       a.URL,
		OldData:   rawJSON(a.OldData),
		NewData:   rawJSON(a.NewData),
		UserUUID:  a.UserUUID,
		IP:        a.IP,
		UserAgent: a.UserAgent,
		CreatedAt: a.CreatedAt,
	}
}

// ListAuditsResp is the paginated list response.
type ListAuditsResp struct {
	Data       []ReadAudit `json:"data"`
	ActualPage int         `json:"actualPage"`
	TotalPages int         `json:"totalPages"`
	Total      int64       `json:"total"`
}

// rawJSON returns the stored text as raw JSON when it is valid, and as
// a JSON string otherwise so a malformed capture never breaks the list.
func rawJSON(s *string) *json.RawMessage {
	if s == nil {
		return nil
	}
	if json.Valid([]byte(*s)) {
		raw := json.RawMessage(*s)
		return &raw
	}
	quoted, err := json.Marshal(*s)
	if err != nil {
		return nil
	}
	raw := json.RawMessage(quoted)
	return &raw
}
