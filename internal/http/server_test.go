package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"leadlens/internal/ingest"
	"leadlens/internal/log"
	"leadlens/internal/metrics"
	"leadlens/internal/notes"
)

func newTestServer(t *testing.T, opts ...ServerOption) (*Server, http.Handler) {
	t.Helper()
	a, b := notes.NewStore(), notes.NewStore()
	logger := log.New(log.DefaultConfig())
	pipeline := ingest.New(a, b, logger)
	srv := NewServer(pipeline, a, b, logger, opts...)
	return srv, srv.Router()
}

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	first := true
	for name, matrix := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range matrix {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cellRef, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestUploadAndReport(t *testing.T) {
	data := buildWorkbook(t, map[string][][]interface{}{
		"客户信息": {
			{"序号", "经纪人", "日期"},
			{1, "Alice", 45558},
			{2, "Bob", "19/09/2024"},
		},
		"Lifecar笔记数据": {
			{"发布时间", "笔记标题", "状态"},
			{"2024-09-19", "launch post", "正常"},
		},
	})

	_, router := newTestServer(t)

	body, contentType := multipartUpload(t, "report.xlsx", data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload ingest.Payload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !payload.Processed["consultation"] || !payload.Processed["notesA"] {
		t.Fatalf("processed = %v", payload.Processed)
	}
	if payload.Processed["campaign"] || payload.Processed["campaignB"] || payload.Processed["notesB"] {
		t.Fatalf("absent datasets must be false: %v", payload.Processed)
	}
	if payload.Data.Consultation == nil || len(payload.Data.Consultation.Rows) != 2 {
		t.Fatalf("consultation data: %+v", payload.Data.Consultation)
	}
	if got := payload.Data.Consultation.Weekly[0].Label; got != "2024/wk38" {
		t.Errorf("weekly label = %q", got)
	}

	// The report endpoint serves whatever was parsed last.
	req = httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}
	var report ingest.Payload
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Processed["consultation"] {
		t.Errorf("report processed = %v", report.Processed)
	}
}

func TestUploadUnreadableFile(t *testing.T) {
	_, router := newTestServer(t)

	body, contentType := multipartUpload(t, "junk.xlsx", []byte{0xde, 0xad, 0xbe, 0xef})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var resp errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error != "unreadable file" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestUploadExceedingSizeCap(t *testing.T) {
	_, router := newTestServer(t, WithMaxUploadBytes(1024))

	body, contentType := multipartUpload(t, "big.csv", bytes.Repeat([]byte("序号,经纪人\n"), 2000))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413, body = %s", rec.Code, rec.Body.String())
	}
	var resp errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error != "upload too large" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestUploadMissingFileField(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportBeforeAnyUpload(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestNotesEndpoints(t *testing.T) {
	srv, router := newTestServer(t)
	srv.notesA.SetData(nil)
	srv.notesB.SetData(nil)

	data := buildWorkbook(t, map[string][][]interface{}{
		"Ozlend笔记数据": {
			{"发布时间", "笔记标题", "状态"},
			{"2024-09-19", "b account note", "正常"},
		},
	})
	body, contentType := multipartUpload(t, "notes.xlsx", data)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notes/b", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("notes/b status = %d", rec.Code)
	}
	if got := rec.Body.String(); !bytes.Contains([]byte(got), []byte("b account note")) {
		t.Errorf("notes/b body = %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notes/a", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("notes/a status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notes/c", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("notes/c status = %d, want 404", rec.Code)
	}
}

func TestPullWithoutSource(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pull", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, router := newTestServer(t, WithRecorder(metrics.NewRecorder()))

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
