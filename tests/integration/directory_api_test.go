package integration

import (
	"context"
	"testing"

	"bluestock_client/internal/analytics"
	"bluestock_client/internal/common"
	"bluestock_client/internal/company"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyDirectoryEndToEnd(t *testing.T) {
	ts, otps := setupGateway(t)
	client := setupClient(t, ts.URL)
	completeRegistration(t, client, otps, "jane@example.com", "9876543210")
	ctx := context.Background()

	companies := company.NewClient(client.cfg, client.authed)

	list, err := companies.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	got, err := companies.Get(ctx, list[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, got.ID)

	created, err := companies.Create(ctx, company.UpsertRequest{
		CompanyName: "Jane Analytics Pvt Ltd",
		Industry:    "Technology",
		City:        "Mumbai",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane-analytics-pvt-ltd", created.Slug)
	assert.NotEmpty(t, created.OwnerID)

	updated, err := companies.Update(ctx, created.Slug, company.UpsertRequest{
		CompanyName: "Jane Analytics Global",
		Industry:    "Technology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Analytics Global", updated.CompanyName)

	// A different account cannot touch it.
	other := setupClient(t, ts.URL)
	completeRegistration(t, other, otps, "john@example.com", "5555555555")
	otherCompanies := company.NewClient(other.cfg, other.authed)

	_, err = otherCompanies.Update(ctx, created.ID, company.UpsertRequest{
		CompanyName: "Hijacked",
		Industry:    "Technology",
	})
	assert.Error(t, err)
}

func TestDirectoryRequiresAuthentication(t *testing.T) {
	ts, _ := setupGateway(t)
	client := setupClient(t, ts.URL)

	companies := company.NewClient(client.cfg, client.authed)
	_, err := companies.List(context.Background())

	// An anonymous transport sends no token; the gateway's 401 comes back
	// as the forced-logout signal.
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestAnalyticsEndToEnd(t *testing.T) {
	ts, otps := setupGateway(t)
	client := setupClient(t, ts.URL)
	completeRegistration(t, client, otps, "jane@example.com", "9876543210")

	stats, err := analytics.NewClient(client.cfg, client.authed).Stats(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, stats.TopProsCompanies)
	assert.NotEmpty(t, stats.SectorDistribution)
	assert.Len(t, stats.ProsVsCons, len(stats.TopProsCompanies))
}
