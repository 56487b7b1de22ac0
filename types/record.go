package types

type Sex string

const (
	SexUnknown Sex = "UNKNOWN_SEX"
	SexFemale  Sex = "FEMALE"
	SexMale    Sex = "MALE"
	SexOther   Sex = "OTHER_SEX"
)

type Classification string

const (
	ClassificationPathogenic       Classification = "PATHOGENIC"
	ClassificationLikelyPathogenic Classification = "LIKELY_PATHOGENIC"
	ClassificationUncertain        Classification = "UNCERTAIN_SIGNIFICANCE"
	ClassificationLikelyBenign     Classification = "LIKELY_BENIGN"
	ClassificationBenign           Classification = "BENIGN"
)

// Canonical field names shared by the merger, the builder and the source
// mapping tables. Every source column is reconciled into one of these.
const (
	FieldSex               = "sex"
	FieldAge               = "age"
	FieldConsanguinity     = "consanguinityStatus"
	FieldFamilyID          = "familyId"
	FieldFamilyMembers     = "totalFamilyMembers"
	FieldCohortMembers     = "totalCohortMembers"
	FieldPhenotypes        = "phenotypicFeatures"
	FieldProcedure         = "procedure"
	FieldProcedureStrategy = "procedureStrategy"
	FieldDiagnosis         = "diagnosis"
	FieldDiagnosticComment = "diagnosticComment"
	FieldVariants          = "genomicVariants"
	FieldZygosity          = "zygosityStatus"
	FieldClassification    = "variantInterpretation"
	FieldExternalReference = "externalReference"
	FieldCaseID            = "caseId"
)

// SourceRecord is one row from one origin data source, untouched except for
// trimming. Field names are whatever the source uses.
type SourceRecord struct {
	Origin string            `json:"origin"`
	Fields map[string]string `json:"fields"`
}

func (rec SourceRecord) Get(field string) string {
	return rec.Fields[field]
}

type Provenance struct {
	Origin    string `json:"origin"`
	CaseID    string `json:"case_id,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// CanonicalRecord is the unified, ontology-linked representation of one
// clinical case. Immutable after construction; Age is an ISO-8601 duration
// or nil, Classification is one of the five pathogenicity tiers or nil.
type CanonicalRecord struct {
	ID             string             `json:"id"`
	Sex            Sex                `json:"sex"`
	Age            *string            `json:"age,omitempty"`
	Concepts       []ExtractedConcept `json:"phenotypic_features,omitempty"`
	Variants       []ParsedVariant    `json:"variants,omitempty"`
	Diagnosis      string             `json:"diagnosis,omitempty"`
	DiseaseID      string             `json:"disease_id,omitempty"`
	Classification *Classification    `json:"classification,omitempty"`
	Provenance     []Provenance       `json:"provenance,omitempty"`
	Diagnostics    []Diagnostic       `json:"diagnostics,omitempty"`
}
