// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonsec/siteapi/internal/model"
	"github.com/halcyonsec/siteapi/internal/store"
)

func newFormsHandler(t *testing.T) (*FormsHandler, *store.SubmissionStore) {
	t.Helper()
	subs := store.NewSubmissionStore(testDB(t))
	return NewFormsHandler(subs), subs
}

func seedSubmission(t *testing.T, subs *store.SubmissionStore, source string) model.FormSubmission {
	t.Helper()
	f, err := subs.Create(context.Background(), store.CreateSubmissionParams{
		FormSource:    source,
		Name:          "A",
		Email:         "a@b.com",
		AgreedToTerms: true,
	})
	require.NoError(t, err)
	return f
}

func TestFormsSubmit(t *testing.T) {
	h, _ := newFormsHandler(t)

	w := httptest.NewRecorder()
	h.Submit(w, jsonRequest(t, http.MethodPost, "/api/forms/submit", map[string]any{
		"formSource":    "contact-page",
		"name":          "Jordan Blake",
		"email":         "jordan@example.com",
		"message":       "Please call me back.",
		"agreedToTerms": true,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	sub := decodeBody[model.FormSubmission](t, w)
	assert.NotZero(t, sub.ID)
	assert.Equal(t, model.FormSourceContactPage, sub.FormSource)
}

func TestFormsSubmit_Validation(t *testing.T) {
	h, _ := newFormsHandler(t)

	w := httptest.NewRecorder()
	h.Submit(w, jsonRequest(t, http.MethodPost, "/api/forms/submit", map[string]any{
		"formSource": "popup-banner",
		"name":       "",
		"email":      "not-an-email",
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[ErrorResponse](t, w)
	assert.Contains(t, resp.Error.Details, "formSource")
	assert.Contains(t, resp.Error.Details, "name")
	assert.Contains(t, resp.Error.Details, "email")
}

func TestFormsAdminList(t *testing.T) {
	h, subs := newFormsHandler(t)
	seedSubmission(t, subs, model.FormSourceContactPage)
	seedSubmission(t, subs, model.FormSourceHeroConsultation)

	w := httptest.NewRecorder()
	h.AdminList(w, httptest.NewRequest(http.MethodGet, "/api/admin/forms", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[page[model.FormSubmission]](t, w)
	assert.Equal(t, int64(2), resp.Total)
}

func TestFormsAdminList_SourceFilter(t *testing.T) {
	h, subs := newFormsHandler(t)
	seedSubmission(t, subs, model.FormSourceContactPage)
	seedSubmission(t, subs, model.FormSourceHeroConsultation)

	w := httptest.NewRecorder()
	h.AdminList(w, httptest.NewRequest(http.MethodGet, "/api/admin/forms?source=contact-page", nil))
	resp := decodeBody[page[model.FormSubmission]](t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, model.FormSourceContactPage, resp.Items[0].FormSource)

	w = httptest.NewRecorder()
	h.AdminList(w, httptest.NewRequest(http.MethodGet, "/api/admin/forms?source=carrier-pigeon", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFormsAdminList_Stats(t *testing.T) {
	h, subs := newFormsHandler(t)
	seedSubmission(t, subs, model.FormSourceContactPage)
	seedSubmission(t, subs, model.FormSourceContactPage)
	seedSubmission(t, subs, model.FormSourceCareerApplication)

	w := httptest.NewRecorder()
	h.AdminList(w, httptest.NewRequest(http.MethodGet, "/api/admin/forms?type=stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeBody[model.SubmissionStats](t, w)
	assert.Equal(t, int64(3), stats.Total)
	require.Len(t, stats.BySource, 2)
	assert.Equal(t, model.FormSourceContactPage, stats.BySource[0].Source, "stats are count-descending")
}

func TestFormsDelete(t *testing.T) {
	h, subs := newFormsHandler(t)
	f := seedSubmission(t, subs, model.FormSourceContactPage)

	del := func(id string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodDelete, "/api/admin/forms/"+id, nil)
		r = requestWithURLParams(r, map[string]string{"id": id})
		w := httptest.NewRecorder()
		h.Delete(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, del(fmt.Sprint(f.ID)).Code)
	assert.Equal(t, http.StatusNotFound, del(fmt.Sprint(f.ID)).Code)
}
