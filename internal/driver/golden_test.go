package driver

import (
	"testing"

	"github.com/avalon-lang/avalon/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoldenFixtures runs every testdata/golden.yaml case through a
// fresh Driver and checks the diagnostic codes it produces, plus
// whether an entry function was located, against the fixture's
// expectations.
func TestGoldenFixtures(t *testing.T) {
	fixtures, err := testutil.LoadFixtures("testdata/golden.yaml")
	require.NoError(t, err, "failed to load golden fixtures")
	require.NotEmpty(t, fixtures, "expected at least one golden fixture")

	for _, fx := range fixtures {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			path := writeSource(t, fx.Source)
			d := New(nil)
			root, err := d.Compile(path)
			require.NoError(t, err, "Compile returned an unexpected hard failure")

			var gotCodes []string
			for _, e := range d.Sink.Errors {
				gotCodes = append(gotCodes, e.Code)
			}
			for _, w := range d.Sink.Warnings {
				gotCodes = append(gotCodes, w.Code)
			}
			assert.ElementsMatch(t, fx.WantCodes, gotCodes, "diagnostic codes mismatch for %s", fx.Name)

			if fx.WantsEntry {
				assert.NotNil(t, root.Entry, "expected an entry function for %s", fx.Name)
			} else {
				assert.Nil(t, root.Entry, "expected no entry function for %s", fx.Name)
			}
		})
	}
}
