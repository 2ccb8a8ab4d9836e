package faers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountReports(t *testing.T) {
	t.Run("ParsesTotalFromMeta", func(t *testing.T) {
		var gotQuery url.Values
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"meta":{"results":{"total":1523}},"results":[{}]}`))
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		count, err := client.CountReports(context.Background(), "warfarin", "severe bleeding")
		require.NoError(t, err)
		assert.Equal(t, 1523, count)

		assert.Equal(t, "1", gotQuery.Get("limit"))
		assert.Equal(t,
			`patient.drug.medicinalproduct:"warfarin" AND patient.reaction.reactionmeddrapt:"severe bleeding"`,
			gotQuery.Get("search"))
	})

	t.Run("NotFoundIsZeroEvidence", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":"NOT_FOUND"}}`, http.StatusNotFound)
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		count, err := client.CountReports(context.Background(), "aspirin", "levitation")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("NonRetryableStatusIsAnError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad search", http.StatusBadRequest)
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.CountReports(context.Background(), "aspirin", "nausea")
		require.Error(t, err)
		assert.ErrorContains(t, err, "status 400")
	})

	t.Run("MalformedBodyIsAnError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"meta":`))
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.CountReports(context.Background(), "aspirin", "nausea")
		require.Error(t, err)
	})

	t.Run("EmptyTermsSkipTheRequest", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				requests++
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		count, err := client.CountReports(context.Background(), "", "nausea")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Zero(t, requests)
	})
}

func TestDrugProfile(t *testing.T) {
	t.Run("ReturnsTopReactions", func(t *testing.T) {
		var gotQuery url.Values
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				_, _ = w.Write([]byte(`{"results":[
					{"term":"NAUSEA","count":900},
					{"term":"DIZZINESS","count":750},
					{"term":"HEADACHE","count":600},
					{"term":"RASH","count":420},
					{"term":"FATIGUE","count":310},
					{"term":"INSOMNIA","count":120},
					{"term":"PRURITUS","count":90}
				]}`))
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		reactions, err := client.DrugProfile(context.Background(), "metformin")
		require.NoError(t, err)

		require.Len(t, reactions, 5)
		assert.Equal(t, "NAUSEA", reactions[0].Term)
		assert.Equal(t, 900, reactions[0].Count)
		assert.Equal(t, "FATIGUE", reactions[4].Term)

		assert.Equal(t, `patient.drug.medicinalproduct:"metformin"`, gotQuery.Get("search"))
		assert.Equal(t, "patient.reaction.reactionmeddrapt.exact", gotQuery.Get("count"))
	})

	t.Run("UnknownDrugHasEmptyProfile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"code":"NOT_FOUND"}}`, http.StatusNotFound)
			}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		reactions, err := client.DrugProfile(context.Background(), "unobtainium")
		require.NoError(t, err)
		assert.Empty(t, reactions)
	})
}
