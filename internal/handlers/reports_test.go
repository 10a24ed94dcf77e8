package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestUpload_NoFile(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	body, contentType := multipartBody(t, "wrongField", "report.xml", "<a/>")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "No file uploaded")
}

func TestUpload_RejectsNonXMLExtension(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	body, contentType := multipartBody(t, "xmlFile", "report.csv", "a,b,c")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Error, "Only XML files")
}

func TestUpload_MalformedXMLIsBadRequest(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	body, contentType := multipartBody(t, "xmlFile", "report.xml", "<INProfileResponse><broken")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "malformed XML")
}

func TestUpload_MissingNameIsBadRequest(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	// Well-formed report with no resolvable applicant name
	body, contentType := multipartBody(t, "xmlFile", "report.xml",
		`<INProfileResponse><SCORE><BureauScore>700</BureauScore></SCORE></INProfileResponse>`)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Error, "name not found")
}

func TestUpload_MethodNotAllowed(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPresignedURL_NoBucketConfigured(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	payload, _ := json.Marshal(PresignedURLRequest{Filename: "big.xml"})
	req := httptest.NewRequest(http.MethodPost, "/api/presigned-url", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	h.PresignedURL(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestReportByID_RejectsNestedPaths(t *testing.T) {
	h := NewHandler(nil, nil, nil, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/creditreports/abc/def", nil)
	rec := httptest.NewRecorder()

	h.ReportByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
