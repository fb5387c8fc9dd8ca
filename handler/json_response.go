package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JhonRainbow6/WebProject/pkg/binder"
	"github.com/JhonRainbow6/WebProject/pkg/validator"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string                     `json:"error"`
	Code   string                     `json:"code"`
	Fields validator.ValidationErrors `json:"fields,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON encodes v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Created encodes v with status 201.
func Created(v any) Response {
	return JSON(v, WithJSONStatus(http.StatusCreated))
}

// JSONError renders err as an ErrorBody with the status ClassifyError picks.
func JSONError(err error, opts ...JSONOption) Response {
	status, body := ClassifyError(err)
	r := &jsonResponse{status: status, body: body}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClassifyError maps err to a status code and a client-safe body.
func ClassifyError(err error) (int, ErrorBody) {
	if fields := validator.ExtractValidationErrors(err); fields != nil {
		msg := "Validation failed"
		if len(fields) > 0 && fields[0].Message != "" {
			msg = fields[0].Message
		}
		return http.StatusBadRequest, ErrorBody{Error: msg, Code: "validation_error", Fields: fields}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, ErrorBody{Error: httpErr.PublicMessage(), Code: httpErr.Key}
	}

	switch {
	case errors.Is(err, binder.ErrRequestTooLarge):
		return ErrRequestEntityTooLarge.Code, ErrorBody{Error: ErrRequestEntityTooLarge.Message, Code: ErrRequestEntityTooLarge.Key}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType.Code, ErrorBody{Error: ErrUnsupportedMediaType.Message, Code: ErrUnsupportedMediaType.Key}
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm):
		return ErrBadRequest.Code, ErrorBody{Error: ErrBadRequest.Message, Code: ErrBadRequest.Key}
	}

	return ErrInternalServerError.Code, ErrorBody{Error: ErrInternalServerError.Message, Code: ErrInternalServerError.Key}
}

type rawJSONResponse struct {
	status int
	body   []byte
}

func (j rawJSONResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err := w.Write(j.body)
	return err
}

// RawJSON writes an already encoded JSON document as-is.
func RawJSON(body []byte) Response {
	return rawJSONResponse{status: http.StatusOK, body: body}
}
