// ABOUTME: Unit tests for the definition loader and validator
// ABOUTME: Covers fail-fast loading, referential integrity, and dry-run validation
package definitions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhousecrm/docpipe/models"
)

const validListingAgreement = `
schema_version: 1
slug: listing-agreement
name: Listing Agreement
external_template_id: "184417"
type: form-driven
display:
  color: blue
  icon: home
  sort_order: 1
form:
  template: documents/listing_agreement.html
  partial: documents/_listing_fields.html
roles:
  - role_key: seller
    external_role_name: Seller
    email_source: transaction.sellers[0].email
    name_source: transaction.sellers[0].full_name
  - role_key: co_seller
    external_role_name: Co-Seller
    email_source: transaction.sellers[1].email
    name_source: transaction.sellers[1].full_name
    optional: true
  - role_key: listing_agent
    external_role_name: Listing Agent
    email_source: user.email
    name_source: user.full_name
    auto_complete: true
fields:
  - field_key: property_address
    external_field_name: Property Address
    role_key: seller
    source: transaction.property_address
  - field_key: list_price
    external_field_name: List Price
    role_key: seller
    source: form.list_price
    transform: currency
  - field_key: seller_initials
    external_field_name: Seller Initials
    role_key: seller
    source: null
`

const invalidBadRole = `
schema_version: 1
slug: purchase-contract
name: Purchase Contract
external_template_id: "200100"
type: pdf-preview
roles:
  - role_key: buyer
    external_role_name: Buyer
    email_source: transaction.buyers[0].email
fields:
  - field_key: earnest_money
    external_field_name: Earnest Money
    role_key: escrow_officer
    source: form.earnest_money
`

func writeDefs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoadAllValid(t *testing.T) {
	dir := writeDefs(t, map[string]string{"listing-agreement.yml": validListingAgreement})
	loader := NewLoader(dir)

	require.NoError(t, loader.LoadAll())
	require.True(t, loader.IsLoaded())

	def := loader.Get("listing-agreement")
	require.NotNil(t, def)
	assert.Equal(t, "Listing Agreement", def.Name)
	assert.Equal(t, models.DocTypeFormDriven, def.Type)
	assert.Len(t, def.Roles, 3)
	assert.Len(t, def.Fields, 3)

	// Manual field round-trips with a nil source.
	assert.True(t, def.Fields[2].Manual())

	// Optional and auto_complete flags survive parsing.
	co, ok := def.Role("co_seller")
	require.True(t, ok)
	assert.True(t, co.Optional)
	agent, ok := def.Role("listing_agent")
	require.True(t, ok)
	assert.True(t, agent.AutoComplete)
}

func TestLoadAllFailFast(t *testing.T) {
	dir := writeDefs(t, map[string]string{
		"listing-agreement.yml": validListingAgreement,
		"purchase-contract.yml": invalidBadRole,
	})
	loader := NewLoader(dir)

	err := loader.LoadAll()
	require.Error(t, err)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	require.Len(t, confErr.Problems, 1)
	assert.Contains(t, confErr.Problems[0], "escrow_officer")

	// No partial load: even the valid file is absent.
	assert.False(t, loader.IsLoaded())
	assert.Empty(t, loader.All())
	assert.Nil(t, loader.Get("listing-agreement"))
}

func TestLoadAllRejectsDotIndexPaths(t *testing.T) {
	bad := `
schema_version: 1
slug: bad-paths
name: Bad Paths
external_template_id: "1"
type: pdf-preview
roles:
  - role_key: seller
    external_role_name: Seller
    email_source: transaction.sellers.0.email
fields: []
`
	dir := writeDefs(t, map[string]string{"bad.yml": bad})
	loader := NewLoader(dir)

	err := loader.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dot-notation")
}

func TestLoadAllRejectsDuplicateKeys(t *testing.T) {
	dup := `
schema_version: 1
slug: dup-keys
name: Duplicate Keys
external_template_id: "2"
type: pdf-preview
roles:
  - role_key: seller
    external_role_name: Seller
  - role_key: seller
    external_role_name: Seller Two
fields:
  - field_key: a
    external_field_name: A
    role_key: seller
    source: form.a
  - field_key: a
    external_field_name: A Again
    role_key: seller
    source: form.a
`
	dir := writeDefs(t, map[string]string{"dup.yml": dup})
	err := NewLoader(dir).LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate role_key "seller"`)
	assert.Contains(t, err.Error(), `duplicate field_key "a"`)
}

func TestLoadAllRejectsFormDrivenWithoutForm(t *testing.T) {
	noForm := `
schema_version: 1
slug: no-form
name: No Form
external_template_id: "3"
type: form-driven
roles:
  - role_key: seller
    external_role_name: Seller
fields: []
`
	dir := writeDefs(t, map[string]string{"no-form.yml": noForm})
	err := NewLoader(dir).LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "form.template")
}

func TestLoadAllRejectsHalfCombinedField(t *testing.T) {
	half := `
schema_version: 1
slug: half-combined
name: Half Combined
external_template_id: "4"
type: pdf-preview
roles:
  - role_key: seller
    external_role_name: Seller
fields:
  - field_key: city_state
    external_field_name: City/State
    role_key: seller
    sources:
      - transaction.city
      - transaction.state
`
	dir := writeDefs(t, map[string]string{"half.yml": half})
	err := NewLoader(dir).LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources without a template")
}

func TestGetByTypeAndAllOrdering(t *testing.T) {
	second := `
schema_version: 1
slug: amendment
name: Amendment
external_template_id: "5"
type: pdf-preview
roles:
  - role_key: seller
    external_role_name: Seller
fields: []
`
	dir := writeDefs(t, map[string]string{
		"listing-agreement.yml": validListingAgreement,
		"amendment.yml":         second,
	})
	loader := NewLoader(dir)
	require.NoError(t, loader.LoadAll())

	all := loader.All()
	require.Len(t, all, 2)
	assert.Equal(t, "amendment", all[0].Slug)
	assert.Equal(t, "listing-agreement", all[1].Slug)

	formDriven := loader.GetByType(models.DocTypeFormDriven)
	require.Len(t, formDriven, 1)
	assert.Equal(t, "listing-agreement", formDriven[0].Slug)
}

func TestReloadKeepsOldSnapshotOnFailure(t *testing.T) {
	dir := writeDefs(t, map[string]string{"listing-agreement.yml": validListingAgreement})
	loader := NewLoader(dir)
	require.NoError(t, loader.LoadAll())

	// Break the directory, then reload: old snapshot must survive.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("slug: [not yaml"), 0644))
	require.Error(t, loader.Reload())
	assert.NotNil(t, loader.Get("listing-agreement"))
	assert.True(t, loader.IsLoaded())

	// Fix it and reload again.
	require.NoError(t, os.Remove(filepath.Join(dir, "broken.yml")))
	require.NoError(t, loader.Reload())
	assert.NotNil(t, loader.Get("listing-agreement"))
}

func TestValidateContentDryRun(t *testing.T) {
	dir := writeDefs(t, map[string]string{"listing-agreement.yml": validListingAgreement})
	loader := NewLoader(dir)
	require.NoError(t, loader.LoadAll())

	err := loader.ValidateContent([]byte(invalidBadRole))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "purchase-contract", verr.Slug)
	require.NotEmpty(t, verr.Problems)
	assert.Contains(t, verr.Problems[0], "escrow_officer")
	assert.Contains(t, err.Error(), "purchase-contract")

	// Dry run never mutates the cache.
	assert.Nil(t, loader.Get("purchase-contract"))
	assert.NotNil(t, loader.Get("listing-agreement"))

	assert.NoError(t, loader.ValidateContent([]byte(validListingAgreement)))

	// Unparsable YAML still yields a typed error, with no slug to report.
	err = loader.ValidateContent([]byte("slug: [not yaml"))
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Slug)
	assert.Contains(t, err.Error(), "unknown slug")
}

func TestGetOrErr(t *testing.T) {
	dir := writeDefs(t, map[string]string{"listing-agreement.yml": validListingAgreement})
	loader := NewLoader(dir)
	require.NoError(t, loader.LoadAll())

	_, err := loader.GetOrErr("listing-agreement")
	assert.NoError(t, err)

	_, err = loader.GetOrErr("nope")
	assert.ErrorContains(t, err, `unknown document "nope"`)
}
