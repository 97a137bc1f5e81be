package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/models"
	"github.com/SAP-F-2025/tutoring-service/internal/services"
)

type fakeVideos struct {
	services.VideoService
	seeded int
}

func (f *fakeVideos) SeedDefaults(ctx context.Context) (int, error) {
	n := 6 - f.seeded
	f.seeded = 6
	return n, nil
}

type fakeAnalytics struct {
	services.AnalyticsService
	drifts []models.PointsDrift
	fixed  bool
}

func (f *fakeAnalytics) ReconcilePoints(ctx context.Context, fix bool) ([]models.PointsDrift, error) {
	f.fixed = fix
	return f.drifts, nil
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantOutput string
}

func runCLI(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cli.out = &out

			err := cli.run(args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func Test_commandLine_usage(t *testing.T) {
	runCLI(t, &commandLine{}, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "reconcile help", args: []string{"reconcile-points", "-h"}, wantErr: errHelp},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	errMigrate := errors.New("migrate failed")
	orig := migrateFunc
	t.Cleanup(func() { migrateFunc = orig })

	calls := 0
	migrateFunc = func(db *gorm.DB) error {
		calls++
		if calls > 1 {
			return errMigrate
		}
		return nil
	}

	runCLI(t, &commandLine{}, []cliTest{
		{name: "ok", args: []string{"migrate"}, wantOutput: "migrations applied"},
		{name: "failure", args: []string{"migrate"}, wantErr: errMigrate},
	})
}

func Test_commandLine_seedVideos(t *testing.T) {
	runCLI(t, &commandLine{videos: &fakeVideos{}}, []cliTest{
		{name: "empty store", args: []string{"seed-videos"}, wantOutput: "seeded 6 videos"},
		{name: "already seeded", args: []string{"seed-videos"}, wantOutput: "nothing seeded"},
	})
}

func Test_commandLine_reconcilePoints(t *testing.T) {
	analytics := &fakeAnalytics{}
	cli := &commandLine{analytics: analytics}

	runCLI(t, cli, []cliTest{
		{name: "no drift", args: []string{"reconcile-points"}, wantOutput: "all profile totals match"},
	})

	analytics.drifts = []models.PointsDrift{{UserID: "s1", TotalPoints: 30, LedgerSum: 20}}
	runCLI(t, cli, []cliTest{
		{name: "report", args: []string{"reconcile-points"}, wantOutput: "rerun with -fix"},
	})
	assert.False(t, analytics.fixed)

	runCLI(t, cli, []cliTest{
		{name: "fix", args: []string{"reconcile-points", "-fix"}, wantOutput: "fixed 1 profiles"},
	})
	assert.True(t, analytics.fixed)
}
