package domain

import "strings"

// Document kind identifiers, the fixed vocabulary entrants may present.
const (
	DocPassport        = "passport"
	DocAccessPermit    = "access_permit"
	DocIDCard          = "ID_card"
	DocVaccinationCert = "certificate_of_vaccination"
	DocDiplomaticAuth  = "diplomatic_authorization"
	DocAsylumGrant     = "grant_of_asylum"
)

// VaccinationSuffix marks per-disease vaccination requirements, e.g.
// "measles_vaccination". The certificate kind also carries the suffix and is
// excluded explicitly wherever that matters.
const VaccinationSuffix = "vaccination"

// Field keys used inside document text blocks.
const (
	FieldName       = "NAME"
	FieldDOB        = "DOB"
	FieldID         = "ID#"
	FieldExpiration = "EXP"
	FieldNation     = "NATION"
	FieldPurpose    = "PURPOSE"
	FieldVaccines   = "VACCINES"
	FieldAccess     = "ACCESS"
)

// PurposeWork is the access-permit PURPOSE value identifying a worker.
const PurposeWork = "WORK"

// IsVaccinationRequirement reports whether doc names a per-disease
// vaccination requirement rather than a literal document kind. The general
// certificate of vaccination is not a per-disease requirement.
func IsVaccinationRequirement(doc string) bool {
	return doc != DocVaccinationCert && strings.HasSuffix(doc, VaccinationSuffix)
}

// DiseaseFromRequirement extracts the disease name from a per-disease
// vaccination requirement, converting underscores back to spaces:
// "yellow_fever_vaccination" -> "yellow fever".
func DiseaseFromRequirement(doc string) string {
	disease := strings.TrimSuffix(doc, VaccinationSuffix)
	disease = strings.TrimSuffix(disease, "_")
	return strings.ReplaceAll(disease, "_", " ")
}

// DisplayDocumentName renders a document identifier for decision messages.
// Underscores become spaces; any per-disease vaccination requirement is
// reported simply as "vaccination".
func DisplayDocumentName(doc string) string {
	if IsVaccinationRequirement(doc) {
		return VaccinationSuffix
	}
	return strings.ReplaceAll(doc, "_", " ")
}

// DocumentID converts a document name as written in a directive into
// identifier form: "ID card" -> "ID_card".
func DocumentID(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
