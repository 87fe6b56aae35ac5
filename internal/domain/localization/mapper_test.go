package localization

import (
	"testing"

	"github.com/obraerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Crítica", "CRITICA"},
		{"  en   progreso ", "EN PROGRESO"},
		{"IN_PROGRESS", "IN PROGRESS"},
		{"in-progress", "IN PROGRESS"},
		{"Planificación", "PLANIFICACION"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestLookupTable_Map(t *testing.T) {
	t.Run("maps spanish aliases", func(t *testing.T) {
		tok, err := InspectionPriority.Map("Crítica")
		require.NoError(t, err)
		assert.Equal(t, "URGENT", tok)

		tok, err = AccountType.Map("Patrimonio Neto")
		require.NoError(t, err)
		assert.Equal(t, "EQUITY", tok)

		tok, err = InspectionStatus.Map("en progreso")
		require.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", tok)
	})

	t.Run("accepts canonical tokens in any form", func(t *testing.T) {
		for _, in := range []string{"IN_PROGRESS", "in progress", "In-Progress"} {
			tok, err := ProjectStatus.Map(in)
			require.NoError(t, err, in)
			assert.Equal(t, "IN_PROGRESS", tok)
		}
	})

	t.Run("unknown label is a validation error", func(t *testing.T) {
		_, err := InspectionPriority.Map("altísima")

		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindValidationFailed))
		assert.Contains(t, err.Error(), "priority")
		assert.Contains(t, err.Error(), "altísima")
	})

	t.Run("blank label returns ErrEmptyLabel", func(t *testing.T) {
		_, err := RubroType.Map("   ")
		assert.ErrorIs(t, err, ErrEmptyLabel)
	})
}

func TestLookupTable_MapOrDefault(t *testing.T) {
	tok, err := InspectionPriority.MapOrDefault("", "MEDIUM")
	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", tok)

	tok, err = InspectionPriority.MapOrDefault("alta", "MEDIUM")
	require.NoError(t, err)
	assert.Equal(t, "HIGH", tok)

	_, err = InspectionPriority.MapOrDefault("desconocida", "MEDIUM")
	assert.Error(t, err, "unknown input must not fall back to the default")
}

func TestTablesAreSelfConsistent(t *testing.T) {
	for _, table := range []*LookupTable{
		InspectionStatus, InspectionPriority, InspectionType,
		AccountType, RubroType, ProjectStatus, EmployeeStatus,
	} {
		known := map[string]bool{}
		for _, tok := range table.Tokens() {
			known[tok] = true
		}
		for label, tok := range table.aliases {
			assert.True(t, known[tok], "%s: alias %q maps to unknown token %q", table.Field(), label, tok)
		}
	}
}

func TestLookupTable_MapRequired(t *testing.T) {
	_, err := AccountType.MapRequired("  ")
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidationFailed))

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "MISSING_ACCOUNT_TYPE", de.Code)

	_, err = AccountType.MapRequired("pasivos corrientes")
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "UNRECOGNIZED_ACCOUNT_TYPE", de.Code)
}
