package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorDefaultsToEnglish(t *testing.T) {
	tr := New("klingon")
	assert.Equal(t, English, tr.Language())
	assert.Equal(t, "Paid", tr.T("paid", nil))
}

func TestTranslatorSwitchLanguage(t *testing.T) {
	tr := New("en")

	assert.True(t, tr.SetLanguage("es"))
	assert.Equal(t, Spanish, tr.Language())
	assert.Equal(t, "Pagado", tr.T("paid", nil))
	assert.Equal(t, "Vencido", tr.T("overdue", nil))

	assert.False(t, tr.SetLanguage("fr"))
	assert.Equal(t, Spanish, tr.Language())
}

func TestTranslatorReplacements(t *testing.T) {
	tr := New("en")
	got := tr.T("adminDashboardWelcome", map[string]string{"name": "Alex"})
	assert.Equal(t, "Welcome, Alex!", got)

	tr.SetLanguage("es")
	got = tr.T("confirmDeleteUserMessage", map[string]string{"name": "Alex", "email": "alex@school.edu"})
	assert.Contains(t, got, "Alex (alex@school.edu)")
}

func TestTranslatorFallsBackToKey(t *testing.T) {
	tr := New("en")
	assert.Equal(t, "someUnknownKey", tr.T("someUnknownKey", nil))
}

func TestCatalogMergesFallback(t *testing.T) {
	tr := New("es")
	catalog := tr.Catalog()
	assert.Equal(t, "Pagado", catalog["paid"])
	// Every English key is present even if Spanish lacked it.
	for key := range englishCatalog {
		assert.Contains(t, catalog, key)
	}
}
