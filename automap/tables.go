// ABOUTME: Curated real-estate domain data for the auto-mapper
// ABOUTME: Alias, synonym, pattern, and type-compatibility tables meant to be tuned over time
package automap

import "regexp"

// fieldAliases maps a normalized source field name to the template field
// names it is known to fill. Hits here are near-certain matches.
var fieldAliases = map[string][]string{
	"property_address": {"Street address", "Address", "Property Address", "Property address"},
	"street_address":   {"Street address", "Address", "Property Address"},
	"city":             {"City"},
	"state":            {"State"},
	"zip":              {"Zip", "Zip Code", "Postal Code"},
	"zip_code":         {"Zip", "Zip Code", "Postal Code"},
	"county":           {"County"},
	"legal_description": {"Legal Description", "Legal Desc"},
	"mls_number":       {"MLS Number", "MLS #", "MLS"},
	"list_price":       {"List Price", "Listing Price"},
	"purchase_price":   {"Purchase Price", "Sales Price", "Sale Price"},
	"earnest_money":    {"Earnest Money", "Earnest Money Amount"},
	"option_fee":       {"Option Fee"},
	"option_period":    {"Option Period", "Option Period Days"},
	"closing_date":     {"Closing Date", "Close Date"},
	"effective_date":   {"Effective Date", "Contract Date"},
	"expiration_date":  {"Expiration Date", "Listing Expiration"},
	"commission_rate":  {"Commission", "Commission Rate", "Commission %"},
	"hoa_fee":          {"HOA Fee", "HOA Dues", "Maintenance Fee"},
	"seller_name":      {"Seller Name", "Seller", "Seller 1 Name"},
	"seller_email":     {"Seller Email", "Seller 1 Email"},
	"seller_phone":     {"Seller Phone", "Seller 1 Phone"},
	"buyer_name":       {"Buyer Name", "Buyer", "Buyer 1 Name"},
	"buyer_email":      {"Buyer Email", "Buyer 1 Email"},
	"buyer_phone":      {"Buyer Phone", "Buyer 1 Phone"},
	"lender_name":      {"Lender", "Lender Name"},
	"title_company":    {"Title Company", "Title Co"},
	"escrow_officer":   {"Escrow Officer", "Escrow Agent"},
	"agent_name":       {"Agent Name", "Listing Agent", "Agent"},
	"broker_name":      {"Broker Name", "Broker", "Brokerage"},
	"license_number":   {"License Number", "License #", "License No"},
}

// patternRule rewrites a numbered source field into the target substring
// it should land on. {n} is replaced by the captured number.
type patternRule struct {
	re     *regexp.Regexp
	target string
}

var patternRules = []patternRule{
	{regexp.MustCompile(`^option_(\d+)$`), "Option {n}"},
	{regexp.MustCompile(`^custom_label_(\d+)$`), "Additional Cost txt {n}"},
	{regexp.MustCompile(`^custom_amount_(\d+)$`), "Additional Cost Amount {n}"},
	{regexp.MustCompile(`^seller_(\d+)_name$`), "Seller {n} Name"},
	{regexp.MustCompile(`^seller_(\d+)_email$`), "Seller {n} Email"},
	{regexp.MustCompile(`^buyer_(\d+)_name$`), "Buyer {n} Name"},
	{regexp.MustCompile(`^buyer_(\d+)_email$`), "Buyer {n} Email"},
	{regexp.MustCompile(`^exclusion_(\d+)$`), "Exclusion {n}"},
}

// booleanTargets maps known financing checkbox fields straight to their
// template counterparts.
var booleanTargets = map[string]string{
	"financing_conventional": "Conventional Option",
	"financing_fha":          "FHA Option",
	"financing_va":           "VA Option",
	"financing_cash":         "Cash Option",
	"financing_owner":        "Owner Finance Option",
	"financing_assumption":   "Assumption Option",
}

// synonymGroups cluster words that mean the same thing on a real-estate
// form. Two words in the same group score a synonym hit.
var synonymGroups = [][]string{
	{"address", "street", "location"},
	{"city", "town"},
	{"state", "province"},
	{"zip", "zipcode", "postal"},
	{"name", "signer"},
	{"seller", "owner", "grantor"},
	{"buyer", "purchaser", "grantee"},
	{"agent", "broker", "realtor", "licensee"},
	{"phone", "telephone", "mobile", "cell", "fax"},
	{"email", "mail"},
	{"date", "day", "deadline"},
	{"closing", "close", "settlement"},
	{"fee", "price", "amount", "cost", "total", "payment"},
	{"tax", "taxes", "prorated", "proration"},
	{"hoa", "association", "maintenance", "dues"},
	{"financing", "loan", "mortgage", "lender"},
	{"signature", "sign", "initials", "initial"},
	{"title", "escrow", "survey"},
	{"earnest", "deposit"},
	{"commission", "compensation"},
	{"option", "termination"},
	{"rate", "percent", "percentage"},
	{"number", "num", "no"},
}

// synonymIndex maps each word to its group for O(1) lookups.
var synonymIndex = func() map[string]int {
	idx := make(map[string]int)
	for g, group := range synonymGroups {
		for _, w := range group {
			idx[w] = g
		}
	}
	return idx
}()

// typeCompat lists the target field types a source field type can fill.
var typeCompat = map[string][]string{
	"text":     {"text", "string", "textarea"},
	"number":   {"number", "text", "string"},
	"date":     {"date", "text", "string"},
	"checkbox": {"checkbox", "text"},
	"radio":    {"radio", "checkbox", "text"},
	"select":   {"select", "text", "string"},
}

// transformKeywords drive transform inference from source field names.
// Checked in order; first hit wins.
var transformKeywords = []struct {
	re        *regexp.Regexp
	transform string
}{
	{regexp.MustCompile(`fee|cost|price|amount|tax|money|commission|deposit|payment|proration|dues`), "currency"},
	{regexp.MustCompile(`date|deadline|closing|expiration|expires`), "date_short"},
	{regexp.MustCompile(`checkbox|_option|^option_|^is_|^has_|financing_`), "checkbox"},
	{regexp.MustCompile(`phone|mobile|cell|fax`), "phone"},
	{regexp.MustCompile(`percent|rate|ratio`), "percent"},
}

// typeTransforms is the fallback when no keyword matches: infer the
// transform from the target field's declared type.
var typeTransforms = map[string]string{
	"date":     "date_short",
	"checkbox": "checkbox",
}
