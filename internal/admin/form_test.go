package admin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/backoffice/pkg/models"
)

func TestForm_SeededFromDefaults(t *testing.T) {
	entity := AccountEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)

	assert.False(t, form.Editing())
	assert.True(t, form.Checked("active"))
	v, err := form.Value("name")
	require.NoError(t, err)
	assert.Empty(t, v)
	v, err = form.Value("port")
	require.NoError(t, err)
	assert.Empty(t, v, "create forms start with blank number inputs")
}

func TestForm_SetChangesOnlyOneField(t *testing.T) {
	entity := AccountEntity()
	record := models.Account{ID: 3, Name: "A1", Host: "h", Port: 5000, Active: false, FixedLot: 0.1, ChatID: "c"}
	form := NewForm(entity.Fields, entity.Draft(record), true)

	require.NoError(t, form.Set("host", "10.0.0.2"))

	want := record.Draft()
	want.Host = "10.0.0.2"
	assert.Equal(t, want, form.Draft())
}

func TestForm_NumberParsing(t *testing.T) {
	entity := AccountEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)

	require.NoError(t, form.Set("port", "5001"))
	require.NoError(t, form.Set("fixed_lot", "0,25"))
	assert.Equal(t, 5001, form.Draft().Port)
	assert.Equal(t, 0.25, form.Draft().FixedLot)

	err := form.Set("port", "abc")
	require.Error(t, err)
	assert.Equal(t, 5001, form.Draft().Port, "invalid input must leave the draft untouched")
	v, err := form.Value("port")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestForm_UnparsedInputBlocksSubmit(t *testing.T) {
	entity := AccountEntity()
	record := models.Account{ID: 1, Name: "A1", Host: "h", Port: 44, Active: true, FixedLot: 0.1}
	form := NewForm(entity.Fields, entity.Draft(record), true)

	require.Error(t, form.Set("port", "44x"))
	_, err := form.Submit()
	var invalid *InvalidFieldsError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"port"}, invalid.Fields)

	require.NoError(t, form.Set("port", "45"))
	draft, err := form.Submit()
	require.NoError(t, err)
	assert.Equal(t, 45, draft.Port)
}

func TestForm_ZeroIsAValue(t *testing.T) {
	entity := AccountEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)
	require.NoError(t, form.Set("name", "A1"))
	require.NoError(t, form.Set("host", "h"))
	require.NoError(t, form.Set("port", "5000"))
	require.NoError(t, form.Set("fixed_lot", "0"))

	draft, err := form.Submit()
	require.NoError(t, err)
	assert.Zero(t, draft.FixedLot)

	require.NoError(t, form.Set("fixed_lot", " "))
	_, err = form.Submit()
	var missing *RequiredFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"fixed_lot"}, missing.Fields)
}

func TestForm_RequiredComesFromFieldDescriptor(t *testing.T) {
	entity := ConfigurationEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)

	_, err := form.Submit()
	var missing *RequiredFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"clave"}, missing.Fields)

	require.NoError(t, form.Set("clave", "modo_mantenimiento"))
	draft, err := form.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.ConfigurationInput{Clave: "modo_mantenimiento"}, draft)
}

func TestForm_ToggleTwiceIsIdentity(t *testing.T) {
	entity := PermissionEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)
	before := form.Draft()

	require.NoError(t, form.Toggle("activo"))
	assert.False(t, form.Draft().Activo)
	require.NoError(t, form.Toggle("activo"))
	assert.Equal(t, before, form.Draft())
}

func TestForm_ToggleRejectsTextField(t *testing.T) {
	entity := ProviderEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)
	assert.Error(t, form.Toggle("nombre"))
}

func TestForm_UnknownField(t *testing.T) {
	entity := ProviderEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)

	err := form.Set("missing", "x")
	assert.True(t, errors.Is(err, ErrUnknownField))
	_, err = form.Value("missing")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestForm_SubmitReportsMissingRequiredFields(t *testing.T) {
	entity := AccountEntity()
	form := NewForm(entity.Fields, entity.Defaults(), false)
	require.NoError(t, form.Set("name", "A1"))

	_, err := form.Submit()
	var reqErr *RequiredFieldsError
	require.True(t, errors.As(err, &reqErr))
	assert.ElementsMatch(t, []string{"host", "port", "fixed_lot"}, reqErr.Fields)
}

func TestForm_RoundTripEqualsRecordDraft(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "account",
			run: func(t *testing.T) {
				e := AccountEntity()
				r := models.Account{ID: 1, Name: "A1", Host: "10.0.0.1", Port: 5000, Active: true, FixedLot: 0.1}
				draft, err := NewForm(e.Fields, e.Draft(r), true).Submit()
				require.NoError(t, err)
				assert.Equal(t, r.Draft(), draft)
			},
		},
		{
			name: "account with zero fixed lot",
			run: func(t *testing.T) {
				e := AccountEntity()
				r := models.Account{ID: 4, Name: "Demo", Host: "10.0.0.9", Port: 5001, Active: false}
				form := NewForm(e.Fields, e.Draft(r), true)
				v, err := form.Value("fixed_lot")
				require.NoError(t, err)
				assert.Equal(t, "0", v)
				draft, err := form.Submit()
				require.NoError(t, err)
				assert.Equal(t, r.Draft(), draft)
			},
		},
		{
			name: "provider",
			run: func(t *testing.T) {
				e := ProviderEntity()
				r := models.Provider{ID: 7, Nombre: "FX", Tipo: "signal", Estado: false}
				draft, err := NewForm(e.Fields, e.Draft(r), true).Submit()
				require.NoError(t, err)
				assert.Equal(t, r.Draft(), draft)
			},
		},
		{
			name: "permission",
			run: func(t *testing.T) {
				e := PermissionEntity()
				r := models.Permission{ID: 2, Cuenta: "A1", Proveedor: "P1", Activo: true}
				draft, err := NewForm(e.Fields, e.Draft(r), true).Submit()
				require.NoError(t, err)
				assert.Equal(t, r.Draft(), draft)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}
