package domain_test

import (
	"testing"

	"github.com/partforge/partforge/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	scad string
}

func (m fakeModel) ToSCAD() string { return m.scad }

func boltM8() domain.Model { return fakeModel{scad: "bolt"} }

func wingNut() domain.Model { return fakeModel{scad: "nut"} }

func TestRegistry_Add(t *testing.T) {
	t.Run("registers parts under explicit names", func(t *testing.T) {
		r := domain.NewRegistry()
		require.NoError(t, r.Add("bolt", fakeModel{scad: "bolt"}))
		require.NoError(t, r.Add("nut", fakeModel{scad: "nut"}))

		model, err := r.Get("bolt")
		require.NoError(t, err)
		assert.Equal(t, "bolt", model.ToSCAD())
		assert.Equal(t, 2, r.Len())
	})

	t.Run("rejects duplicate names and keeps the first part", func(t *testing.T) {
		r := domain.NewRegistry()
		require.NoError(t, r.Add("bolt", fakeModel{scad: "first"}))

		err := r.Add("bolt", fakeModel{scad: "second"})
		require.ErrorIs(t, err, domain.ErrPartAlreadyExists)

		model, err := r.Get("bolt")
		require.NoError(t, err)
		assert.Equal(t, "first", model.ToSCAD())
		assert.Len(t, r.Failures(), 1)
	})

	t.Run("rejects nil models", func(t *testing.T) {
		r := domain.NewRegistry()
		err := r.Add("bolt", nil)
		require.ErrorIs(t, err, domain.ErrNilModel)
		assert.Equal(t, 0, r.Len())
	})
}

func TestRegistry_AddFunc(t *testing.T) {
	t.Run("derives kebab-case names from function identifiers", func(t *testing.T) {
		r := domain.NewRegistry()
		require.NoError(t, r.AddFunc(boltM8))
		require.NoError(t, r.AddFunc(wingNut))

		_, err := r.Get("bolt-m8")
		require.NoError(t, err)
		_, err = r.Get("wing-nut")
		require.NoError(t, err)
	})

	t.Run("a panicking constructor does not corrupt other parts", func(t *testing.T) {
		r := domain.NewRegistry()
		require.NoError(t, r.AddFunc(boltM8))

		err := r.AddFunc(func() domain.Model {
			panic("geometry exploded")
		})
		require.Error(t, err)

		// The failing part is simply absent; the rest of the registry
		// is intact.
		require.NoError(t, r.AddFunc(wingNut))
		assert.Equal(t, 2, r.Len())
		require.Len(t, r.Failures(), 1)
		assert.Contains(t, r.Failures()[0].Err.Error(), "panicked")
	})
}

func TestRegistry_Get(t *testing.T) {
	r := domain.NewRegistry()
	_, err := r.Get("missing")
	require.ErrorIs(t, err, domain.ErrPartNotFound)
}

func TestRegistry_Parts_OrderIndependent(t *testing.T) {
	a := domain.NewRegistry()
	require.NoError(t, a.Add("nut", fakeModel{scad: "nut"}))
	require.NoError(t, a.Add("bolt", fakeModel{scad: "bolt"}))
	require.NoError(t, a.Add("washer", fakeModel{scad: "washer"}))

	b := domain.NewRegistry()
	require.NoError(t, b.Add("washer", fakeModel{scad: "washer"}))
	require.NoError(t, b.Add("bolt", fakeModel{scad: "bolt"}))
	require.NoError(t, b.Add("nut", fakeModel{scad: "nut"}))

	names := func(parts []domain.Part) []string {
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = p.Name
		}
		return out
	}

	assert.Equal(t, []string{"bolt", "nut", "washer"}, names(a.Parts()))
	assert.Equal(t, names(a.Parts()), names(b.Parts()))
}
