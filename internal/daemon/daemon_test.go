package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treelot/treelotd/internal/config"
	"github.com/treelot/treelotd/internal/core/market"
	"github.com/treelot/treelotd/internal/core/types"
)

const testAdminHex = "ad00000000000000000000000000000000000000"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{
			RPCAddress:  "127.0.0.1:0",
			GRPCAddress: "",
		},
		Storage: config.StorageConfig{
			Backend:   "pebble",
			Path:      filepath.Join(dir, "db"),
			CacheSize: 4,
		},
		Journal: config.JournalConfig{
			Backend: "sqlite",
			DSN:     filepath.Join(dir, "journal.db"),
		},
		Contract: config.ContractConfig{
			Admin:          testAdminHex,
			TreesPerLot:    10,
			SettlementName: "Settlement Token",
		},
		LogLevel: "error",
	}
}

func TestGenesisState(t *testing.T) {
	cfg := testConfig(t)

	st, err := genesisState(cfg.Contract)
	require.NoError(t, err)
	require.NotNil(t, st.Contract)
	require.Equal(t, testAdminHex, st.Contract.Admin.String())
	require.Equal(t, uint64(10), st.Contract.TreesPerLot)
	require.True(t, st.Book.HasClass(st.Contract.SettlementClass))
	require.True(t, st.Book.HasClass(st.Contract.CertificationClass))
}

func TestGenesisStateBadAdmin(t *testing.T) {
	_, err := genesisState(config.ContractConfig{Admin: "nothex", TreesPerLot: 10})
	require.Error(t, err)
}

func TestDaemonRestoresAcrossRestarts(t *testing.T) {
	cfg := testConfig(t)

	d, err := New(cfg)
	require.NoError(t, err)

	admin, err := types.ParseAccountID(testAdminHex)
	require.NoError(t, err)
	op := &market.AddOffer{
		Admin:    admin,
		Location: "Valdivia",
		Variety:  "Pine",
		Price:    "500",
	}
	require.NoError(t, d.Engine().Apply(op))
	require.Equal(t, uint64(1), d.Engine().Seq())
	require.NoError(t, d.Close())

	// A fresh daemon over the same storage must come back at the same
	// sequence with the offer intact.
	d2, err := New(cfg)
	require.NoError(t, err)
	defer d2.Close()

	require.Equal(t, uint64(1), d2.Engine().Seq())
	d2.Engine().View(func(st *market.State) {
		require.Equal(t, uint64(1), st.Offers.Tail())
		offer, err := st.Offers.Get(0)
		require.NoError(t, err)
		require.Equal(t, op.Class, offer.Class)
	})
}
