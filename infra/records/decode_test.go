package records

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/studiodesk/core/model"
)

func TestDecodeOrdersMixedCasing(t *testing.T) {
	raw := []map[string]any{
		{"id": 17, "scheduledDate": "2025-01-04", "scheduledTime": "10:00 AM", "status": "In Progress", "price": 349.95, "isRush": true},
		{"ID": "o-2", "scheduled_date": "2025-01-05", "status": "completed", "price": "120.10", "created_at": "2024-12-20T08:00:00Z", "paid": "true"},
		{"id": "o-3", "Scheduled-Date": " 2025-01-06 ", "status": "pending", "createdAt": "2024-12-21"},
	}
	orders, err := DecodeOrders(raw)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "17", orders[0].ID)
	assert.Equal(t, "2025-01-04", orders[0].ScheduledDate)
	assert.Equal(t, "10:00 AM", orders[0].ScheduledTime)
	assert.Equal(t, model.StatusInProgress, orders[0].Status)
	assert.True(t, orders[0].Price.Equal(decimal.RequireFromString("349.95")))

	require.NotNil(t, orders[1].CreatedAt)
	assert.True(t, orders[1].CreatedAt.Equal(time.Date(2024, 12, 20, 8, 0, 0, 0, time.UTC)))
	require.NotNil(t, orders[1].Paid)
	assert.True(t, *orders[1].Paid)
	assert.True(t, orders[1].Price.Equal(decimal.RequireFromString("120.10")))

	assert.Equal(t, "2025-01-06", orders[2].ScheduledDate)
	assert.True(t, orders[2].Price.IsZero())
	assert.Nil(t, orders[2].Paid)
	require.NotNil(t, orders[2].CreatedAt)
	assert.Equal(t, 21, orders[2].CreatedAt.Day())
}

func TestDecodeOrdersKeepsMalformedDates(t *testing.T) {
	orders, err := DecodeOrders([]map[string]any{{"id": "x", "scheduled_date": "soon"}})
	require.NoError(t, err)
	assert.Equal(t, "soon", orders[0].ScheduledDate)
}

func TestDecodeOrdersErrors(t *testing.T) {
	_, err := DecodeOrders([]map[string]any{{"id": "a", "price": -5}})
	assert.ErrorContains(t, err, "negative price")
	_, err = DecodeOrders([]map[string]any{{"id": "a"}, {"id": "b", "price": "twelve"}})
	assert.ErrorContains(t, err, "order 1")
	_, err = DecodeOrders([]map[string]any{{"id": "a", "createdAt": "yesterday"}})
	assert.Error(t, err)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, model.StatusInProgress, NormalizeStatus(" In-Progress "))
	assert.Equal(t, model.StatusCancelled, NormalizeStatus("CANCELLED"))
}

func TestDecodeResources(t *testing.T) {
	res, err := DecodeResources([]map[string]any{
		{"id": 1, "name": "Alex Johnson", "availableTimes": []any{"9:00 AM", "1:00 PM"}},
		{"ID": "2", "Name": "Blair", "available_times": []any{}},
	})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "1", res[0].ID)
	assert.Equal(t, []string{"9:00 AM", "1:00 PM"}, res[0].AvailableTimes)

	_, err = DecodeResources([]map[string]any{{"id": "3"}})
	assert.ErrorContains(t, err, "name failed required")
}

func TestDecodePriorJobsAndCoordinates(t *testing.T) {
	jobs, err := DecodePriorJobs([]map[string]any{
		{"photographerId": "ignored", "resourceId": "1", "location": map[string]any{"lat": -33.86, "lng": "151.2"}, "date": "2025-01-03", "time": "9:00 AM"},
		{"resource_id": "2"},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.NotNil(t, jobs[0].Location)
	assert.InDelta(t, 151.2, jobs[0].Location.Lng, 1e-9)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), jobs[0].Date)
	assert.Nil(t, jobs[1].Location)

	_, err = DecodeCoordinate(map[string]any{"lat": 95, "lng": 0})
	assert.ErrorContains(t, err, "lat failed latitude")
	_, err = DecodeCoordinate(map[string]any{"lat": 10})
	assert.Error(t, err)
	c, err := DecodeCoordinate(nil)
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestDecodeYAMLDocument(t *testing.T) {
	data := `
orders:
  - id: a
    scheduledDate: 2025-01-04
    status: scheduled
    price: 250
resources:
  - id: "1"
    name: Alex Johnson
    availableTimes: ["9:00 AM", "1:00 PM"]
priorJobs:
  - resourceId: "1"
    location: {lat: -33.865143, lng: 151.2099}
target:
  lat: -33.865143
  lng: 151.2099
preferredResource: Alex Johnson
`
	doc, err := Decode(strings.NewReader(data), "yaml")
	require.NoError(t, err)
	require.Len(t, doc.Orders, 1)
	assert.Equal(t, "2025-01-04", doc.Orders[0].ScheduledDate)
	require.Len(t, doc.Resources, 1)
	require.Len(t, doc.PriorJobs, 1)
	require.NotNil(t, doc.Target)
	req := doc.SuggestRequest()
	assert.Equal(t, "Alex Johnson", req.PreferredResource)
	assert.Equal(t, doc.Resources, req.Resources)
}

func TestDecodeJSONList(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[{"id":"a","scheduled_date":"2025-01-04"},{"id":"b","scheduledDate":"2025-01-05"}]`), "json")
	require.NoError(t, err)
	assert.Len(t, doc.Orders, 2)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("{}"), "toml")
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("{"), "json")
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(`{"target":{"lat":0,"lng":200}}`), "json")
	assert.ErrorContains(t, err, "target")

	doc, err := Decode(strings.NewReader(""), "yaml")
	require.NoError(t, err)
	assert.Empty(t, doc.Orders)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"orders":[{"id":"a","scheduled_date":"2025-01-04"}]}`), 0o644))
	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Orders, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	txt := filepath.Join(dir, "orders.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = LoadFile(txt)
	assert.Error(t, err)
}
