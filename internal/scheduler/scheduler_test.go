package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/foodtracker/internal/config"
	"github.com/mamadbah2/foodtracker/internal/domain/models"
	"github.com/mamadbah2/foodtracker/internal/service/reporting"
)

type staticSource struct{ state models.State }

func (s staticSource) Snapshot() models.State { return s.state }

type recordingWebhook struct {
	texts []string
	err   error
}

func (r *recordingWebhook) PostText(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

type recordingSheets struct{ rows [][]interface{} }

func (r *recordingSheets) AppendRow(_ context.Context, _ string, values []interface{}) error {
	r.rows = append(r.rows, values)
	return nil
}

func (r *recordingSheets) ReadRange(context.Context, string) ([][]interface{}, error) {
	return nil, nil
}

func testConfig() config.ReportingConfig {
	return config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC", LowStockThreshold: 50}
}

func TestRunOnceExportsAndPostsDigest(t *testing.T) {
	source := staticSource{state: models.State{
		Inventory: []models.InventoryItem{{ID: "1", Name: "Tofu", Stock: 3, Price: 1300}},
	}}
	sheets := &recordingSheets{}
	hook := &recordingWebhook{}
	s := NewScheduler(testConfig(), source, reporting.NewService(sheets, 50, nil), hook, nil)
	s.now = func() time.Time { return time.Date(2024, 6, 5, 20, 0, 0, 0, time.UTC) }

	s.RunOnce(context.Background())

	require.Len(t, sheets.rows, 1)
	assert.Equal(t, "2024-06-05", sheets.rows[0][0])
	require.Len(t, hook.texts, 1)
	assert.Contains(t, hook.texts[0], "Low stock (<= 50): Tofu (3).")
}

func TestRunOnceWithoutExportOrWebhook(t *testing.T) {
	s := NewScheduler(testConfig(), staticSource{}, reporting.NewService(nil, 50, nil), nil, nil)

	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
}

func TestRunOnceSurvivesWebhookFailure(t *testing.T) {
	hook := &recordingWebhook{err: errors.New("unreachable")}
	s := NewScheduler(testConfig(), staticSource{}, reporting.NewService(nil, 50, nil), hook, nil)

	s.RunOnce(context.Background())

	assert.Len(t, hook.texts, 1)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CronSchedule = "every day"
	s := NewScheduler(cfg, staticSource{}, reporting.NewService(nil, 50, nil), nil, nil)

	assert.Error(t, s.Start())
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler(testConfig(), staticSource{}, reporting.NewService(nil, 50, nil), nil, nil)

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
