package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) (*WebAPI, *httptest.Server) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	api := NewWebAPI(logger, Config{Addr: "127.0.0.1:0"})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && out != nil {
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK && out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func amounts(a *AllocationBody) []string {
	out := make([]string, len(a.Lines))
	for i, l := range a.Lines {
		out[i] = l.Amount
	}
	return out
}

func TestHealthz(t *testing.T) {
	_, srv := newTestAPI(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestListJars(t *testing.T) {
	_, srv := newTestAPI(t)

	var got JarsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/jars", &got))

	assert.Equal(t, "editable", got.Mode)
	assert.Equal(t, 4666.0, got.DefaultIncome)
	require.Len(t, got.Jars, 6)
	assert.Equal(t, "NEC", got.Jars[0].Code)
	assert.Equal(t, 50, got.Jars[0].DefaultPercent)
	assert.Equal(t, "55%", got.Jars[0].FixedShare)
	assert.Equal(t, "emphasis", got.Jars[1].Label)
	assert.Equal(t, "emphasis", got.Jars[2].Label)
	assert.Equal(t, "normal", got.Jars[3].Label)

	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/jars?mode=fixed", &got))
	assert.Equal(t, 5000.0, got.DefaultIncome)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/v1/jars?mode=weekly", nil))
}

func TestGetAllocation(t *testing.T) {
	_, srv := newTestAPI(t)

	tests := []struct {
		name      string
		query     string
		state     string
		amounts   []string
		total     string
		excess    int
		remainder int
	}{
		{
			name:    "defaults",
			query:   "",
			state:   "exact",
			amounts: []string{"2333.00", "699.90", "559.92", "559.92", "466.60", "46.66"},
			total:   "4666.00",
		},
		{
			name:      "underfilled still allocates",
			query:     "?income=4666&percents=40,15,12,12,10,1",
			state:     "underfilled",
			amounts:   []string{"1866.40", "699.90", "559.92", "559.92", "466.60", "46.66"},
			total:     "4199.40",
			remainder: 10,
		},
		{
			name:   "over limit has no allocation",
			query:  "?percents=60,15,12,12,10,1",
			state:  "over_limit",
			excess: 10,
		},
		{
			name:    "inputs are clamped",
			query:   "?income=-20&percents=150,0,0,0,0,0",
			state:   "exact",
			amounts: []string{"0.00", "0.00", "0.00", "0.00", "0.00", "0.00"},
			total:   "0.00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got AllocationResponse
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/allocation"+tc.query, &got))

			require.NotNil(t, got.Status)
			assert.Equal(t, tc.state, got.Status.State)
			assert.Equal(t, tc.excess, got.Status.Excess)
			assert.Equal(t, tc.remainder, got.Status.Remainder)

			if tc.amounts == nil {
				assert.Nil(t, got.Allocation)
				assert.Contains(t, got.Status.Message, "Over the limit")
				return
			}
			require.NotNil(t, got.Allocation)
			assert.Equal(t, tc.amounts, amounts(got.Allocation))
			assert.Equal(t, tc.total, got.Allocation.Total)
		})
	}
}

func TestAllocationCapsHugeIncome(t *testing.T) {
	_, srv := newTestAPI(t)

	var got AllocationResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/allocation?income=1e307", &got))
	assert.Equal(t, "1000000000000.00", got.Income)
	require.NotNil(t, got.Allocation)
	assert.Equal(t, "1000000000000.00", got.Allocation.Total)

	got = AllocationResponse{}
	require.Equal(t, http.StatusOK,
		postJSON(t, srv.URL+"/api/v1/allocation", `{"mode":"fixed","income":1e308}`, &got))
	assert.Equal(t, "1000000000000.00", got.Income)
	require.NotNil(t, got.Allocation)
	assert.Equal(t, "1000000000000.00", got.Allocation.Total)
}

func TestGetAllocationFixed(t *testing.T) {
	_, srv := newTestAPI(t)

	var got AllocationResponse
	require.Equal(t, http.StatusOK,
		getJSON(t, srv.URL+"/api/v1/allocation?mode=fixed&income=5000&percents=90,90", &got))

	assert.Equal(t, "fixed", got.Mode)
	assert.Nil(t, got.Status)
	assert.Empty(t, got.Percents)
	require.NotNil(t, got.Allocation)
	assert.Equal(t, []string{"2750.00", "500.00", "500.00", "500.00", "500.00", "250.00"}, amounts(got.Allocation))
	assert.Equal(t, "5,000.00 zł", got.Allocation.TotalText)
	assert.Equal(t, "55%", got.Allocation.Lines[0].Share)
}

func TestGetAllocationBadInput(t *testing.T) {
	_, srv := newTestAPI(t)

	for _, q := range []string{
		"?percents=50,50",
		"?percents=50,abc,0,0,0,0",
		"?income=lots",
		"?mode=weekly",
	} {
		assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/v1/allocation"+q, nil), q)
	}
}

func TestPostAllocation(t *testing.T) {
	_, srv := newTestAPI(t)

	var got AllocationResponse
	code := postJSON(t, srv.URL+"/api/v1/allocation",
		`{"mode":"editable","income":4666,"percents":[50,15,12,12,10,1]}`, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "4666.00", got.Income)
	assert.Equal(t, []int{50, 15, 12, 12, 10, 1}, got.Percents)
	require.NotNil(t, got.Allocation)
	assert.Equal(t, "2,333.00 zł", got.Allocation.Lines[0].AmountText)

	got = AllocationResponse{}
	code = postJSON(t, srv.URL+"/api/v1/allocation", `{"mode":"fixed"}`, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5000.00", got.Income)
	assert.Equal(t, "5000.00", got.Allocation.Total)

	got = AllocationResponse{}
	code = postJSON(t, srv.URL+"/api/v1/allocation", `{"percents":[100,100,100,100,100,100]}`, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "over_limit", got.Status.State)
	assert.Equal(t, 500, got.Status.Excess)
	assert.Nil(t, got.Allocation)
}

func TestPostAllocationBadInput(t *testing.T) {
	_, srv := newTestAPI(t)

	for _, body := range []string{
		`{"mode":`,
		`{"mode":"editable","bonus":1}`,
		`{"percents":[1,2,3]}`,
		`{"mode":"yearly"}`,
	} {
		assert.Equal(t, http.StatusBadRequest, postJSON(t, srv.URL+"/api/v1/allocation", body, nil), body)
	}
}

func TestStatsCountsRequests(t *testing.T) {
	_, srv := newTestAPI(t)

	getJSON(t, srv.URL+"/api/v1/allocation", nil)
	getJSON(t, srv.URL+"/api/v1/allocation?percents=60,15,12,12,10,1", nil)
	getJSON(t, srv.URL+"/api/v1/allocation?mode=weekly", nil)

	var got StatsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/v1/stats", &got))
	assert.Equal(t, int64(4), got.Requests)
	assert.Equal(t, int64(2), got.Computations)
	assert.Equal(t, int64(1), got.OverLimit)
	assert.NotEmpty(t, got.StartedAt)
}

func TestRunStopsOnCancel(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	api := NewWebAPI(logger, Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
