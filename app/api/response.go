// Package api holds the request decoding and response writing shared by the handlers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"

	"github.com/veo1/inventory-catalog/inventory"
	"github.com/veo1/inventory-catalog/models"
)

func OKResponse(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func ErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// SeeOther points the client at the reference path of the affected record.
func SeeOther(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	WriteJSON(w, http.StatusSeeOther, map[string]string{"url": location})
}

// FailureResponse maps a service error onto a response.
// Not found errors become 404; anything else is logged and reported as 500.
func FailureResponse(w http.ResponseWriter, err error, notFound, failure string) {
	if errors.Is(err, models.ErrNotFound) {
		ErrorResponse(w, http.StatusNotFound, notFound)
		return
	}
	log.Printf("%s: %v", failure, err)
	ErrorResponse(w, http.StatusInternalServerError, failure)
}

// AsValidation returns the violations carried by err, if any.
func AsValidation(err error) ([]inventory.Violation, bool) {
	var verr *inventory.ValidationError
	if errors.As(err, &verr) {
		return verr.Violations, true
	}
	return nil, false
}

// DecodeInput reads the submitted fields from a JSON object or a form body.
// JSON numbers and booleans are kept in their literal text form.
func DecodeInput(r *http.Request) (inventory.Input, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		in := inventory.Input{}
		for key := range r.PostForm {
			in[key] = r.PostForm.Get(key)
		}
		return in, nil
	}

	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}

	in := make(inventory.Input, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case nil:
			in[key] = ""
		case string:
			in[key] = v
		case json.Number:
			in[key] = v.String()
		case bool:
			in[key] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("field %q: unsupported value", key)
		}
	}
	return in, nil
}
