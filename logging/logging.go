package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service     string `json:"service"`
	Invoice     string `json:"invoice,omitempty"`
	SalesPerson string `json:"sales_person,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	Step        string `json:"step,omitempty"`
	Status      string `json:"status,omitempty"`
	DurationMS  int64  `json:"duration_ms,omitempty"`
	Lines       int    `json:"lines,omitempty"`
	Skipped     int    `json:"skipped,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

type record struct {
	Fields
	Timestamp string `json:"timestamp"`
}

// Log writes fields as a single JSON line through the standard logger.
func Log(fields Fields) {
	data, err := json.Marshal(record{Fields: fields, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)})
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
