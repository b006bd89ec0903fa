package modality

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

func TestHTTPClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/observations/patient-1", r.URL.Path)
		json.NewEncoder(w).Encode(diagnosis.Observation{
			Fields:            map[string]string{"pulseType": "wiry"},
			OverallAssessment: "wiry pulse noted",
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(diagnosis.ModalityTouch, srv.URL, 5*time.Second)

	obs, err := client.Fetch(context.Background(), core.PatientID("patient-1"))
	require.NoError(t, err)
	assert.Equal(t, "wiry", obs.Fields["pulseType"])
	assert.Equal(t, diagnosis.ModalityTouch, client.Modality())
}

func TestHTTPClientFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewHTTPClient(diagnosis.ModalityLooking, srv.URL, 5*time.Second)

	_, err := client.Fetch(context.Background(), core.PatientID("patient-2"))
	assert.ErrorIs(t, err, core.ErrModalityUnavailable)
}

func TestHTTPClientFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(diagnosis.ModalitySmell, srv.URL, 5*time.Second)

	_, err := client.Fetch(context.Background(), core.PatientID("patient-3"))
	assert.Error(t, err)
}

func TestClientsFromURLsSkipsUnconfigured(t *testing.T) {
	clients := ClientsFromURLs(map[diagnosis.Modality]string{
		diagnosis.ModalityLooking: "http://looking.local",
		diagnosis.ModalityTouch:   "http://touch.local",
	}, time.Second)

	require.Len(t, clients, 2)
	assert.Equal(t, diagnosis.ModalityLooking, clients[0].Modality())
	assert.Equal(t, diagnosis.ModalityTouch, clients[1].Modality())
}
