package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in epoch milliseconds, the
// timestamp format used by every response envelope.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewResponse creates a ResponseModel with the given code, data, and text.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// EntryData wraps a single record entry along with its references.
type EntryData struct {
	Entry      interface{}     `json:"entry"`
	References ReferencesModel `json:"references"`
}

// ListData wraps a list of records along with shared references.
type ListData struct {
	LimitExceeded bool            `json:"limitExceeded"`
	List          interface{}     `json:"list"`
	References    ReferencesModel `json:"references"`
}

// NewEntryResponse creates a 200 response wrapping a single entry.
func NewEntryResponse(entry interface{}, references ReferencesModel) ResponseModel {
	return NewResponse(http.StatusOK, EntryData{Entry: entry, References: references}, "OK")
}

// NewListResponse creates a 200 response wrapping a list.
func NewListResponse(list interface{}, references ReferencesModel) ResponseModel {
	return NewResponse(http.StatusOK, ListData{List: list, References: references}, "OK")
}

// NewCreatedResponse creates a 201 response wrapping a newly created entry.
func NewCreatedResponse(entry interface{}, references ReferencesModel) ResponseModel {
	return NewResponse(http.StatusCreated, EntryData{Entry: entry, References: references}, "Created")
}
