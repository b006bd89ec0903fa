// Package modality provides HTTP clients for the four diagnostic stream
// services. Each client serves one stream; the coordinator treats any fetch
// failure as that stream being absent for the analysis.
package modality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/internal/errors"
	"sizhen/ports"
)

// HTTPClient fetches observations for one stream over HTTP. The remote
// service exposes GET {baseURL}/observations/{patientID} returning an
// observation JSON document.
type HTTPClient struct {
	modality diagnosis.Modality
	baseURL  string
	client   *http.Client
}

// NewHTTPClient builds a client for one stream endpoint.
func NewHTTPClient(m diagnosis.Modality, baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		modality: m,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Modality() diagnosis.Modality {
	return c.modality
}

// Fetch returns the latest observation the remote stream holds for the
// patient. 404 maps to core.ErrModalityUnavailable so callers can treat an
// unexamined patient the same way as a downed service.
func (c *HTTPClient) Fetch(ctx context.Context, patientID core.PatientID) (*diagnosis.Observation, error) {
	url := fmt.Sprintf("%s/observations/%s", c.baseURL, patientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.ModalityFetch(string(c.modality), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.ModalityFetch(string(c.modality), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s has no observation for patient %s",
			core.ErrModalityUnavailable, c.modality, patientID)
	case resp.StatusCode != http.StatusOK:
		return nil, errors.ModalityFetch(string(c.modality),
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var obs diagnosis.Observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return nil, errors.ModalityFetch(string(c.modality), err)
	}
	return &obs, nil
}

// ClientsFromURLs builds one client per configured stream endpoint,
// skipping streams with no URL.
func ClientsFromURLs(urls map[diagnosis.Modality]string, timeout time.Duration) []ports.ModalityService {
	var out []ports.ModalityService
	for _, m := range diagnosis.Modalities() {
		if url := urls[m]; url != "" {
			out = append(out, NewHTTPClient(m, url, timeout))
		}
	}
	return out
}
