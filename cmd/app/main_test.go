package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGridSites(t *testing.T) {
	sites := generateGridSites(10, 1000, 1000)
	assert.Len(t, sites, 10)
	for _, s := range sites {
		assert.True(t, s.X > 0 && s.X < 1000+1000/4, "%v", s)
		assert.True(t, s.Y > 0 && s.Y < 1000, "%v", s)
	}
	assert.Len(t, generateGridSites(1, 100, 100), 1)
}

func TestDiagramHandler(t *testing.T) {
	form := url.Values{}
	form.Set("gauge", "20,20 20,0 0,0 0,20")
	form.Set("sites", "100,100 400,300 200,500")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	diagramHandler(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "[run] three-site phase done")
	assert.Contains(t, body, "echarts")
}

func TestDiagramHandler_BadGauge(t *testing.T) {
	form := url.Values{}
	form.Set("gauge", "0,0 10,10 10,0 0,10")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	diagramHandler(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "[app] bad input")
	assert.NotContains(t, body, "[run] computation started")
}
