package matching

// ModelGroup buckets the 13 collaboration models by the weight template
// their scorer uses.
type ModelGroup string

const (
	GroupDelivery    ModelGroup = "delivery"    // skill/financial/past-performance
	GroupStrategic   ModelGroup = "strategic"   // alignment/strengths/culture
	GroupPooling     ModelGroup = "pooling"     // timeline/geography/barter
	GroupHiring      ModelGroup = "hiring"      // qualifications/availability/budget
	GroupCompetition ModelGroup = "competition" // technical/price/innovation
)

// Collaboration model codes.
const (
	ModelTaskBased          = "1.1"
	ModelConsortium         = "1.2"
	ModelProjectJV          = "1.3"
	ModelSPV                = "1.4"
	ModelStrategicJV        = "2.1"
	ModelStrategicAlliance  = "2.2"
	ModelMentorship         = "2.3"
	ModelBulkPurchasing     = "3.1"
	ModelCoOwnership        = "3.2"
	ModelResourceExchange   = "3.3"
	ModelProfessionalHiring = "4.1"
	ModelConsultantHiring   = "4.2"
	ModelCompetition        = "5.1"
)

// CollaborationModel describes one of the 13 relationship templates an
// opportunity can be tagged with.
type CollaborationModel struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Group         ModelGroup         `json:"group"`
	Applicability []RelationshipType `json:"applicability"`
}

var allRelationships = []RelationshipType{
	RelationshipB2B, RelationshipB2P, RelationshipP2B, RelationshipP2P,
}

var modelRegistry = map[string]*CollaborationModel{
	ModelTaskBased: {
		Code:          ModelTaskBased,
		Name:          "Task-Based Engagement",
		Group:         GroupDelivery,
		Applicability: allRelationships,
	},
	ModelConsortium: {
		Code:          ModelConsortium,
		Name:          "Consortium",
		Group:         GroupDelivery,
		Applicability: []RelationshipType{RelationshipB2B},
	},
	ModelProjectJV: {
		Code:          ModelProjectJV,
		Name:          "Project Joint Venture",
		Group:         GroupDelivery,
		Applicability: []RelationshipType{RelationshipB2B, RelationshipB2P},
	},
	ModelSPV: {
		Code:          ModelSPV,
		Name:          "Special Purpose Vehicle",
		Group:         GroupDelivery,
		Applicability: []RelationshipType{RelationshipB2B},
	},
	ModelStrategicJV: {
		Code:          ModelStrategicJV,
		Name:          "Strategic Joint Venture",
		Group:         GroupStrategic,
		Applicability: []RelationshipType{RelationshipB2B},
	},
	ModelStrategicAlliance: {
		Code:          ModelStrategicAlliance,
		Name:          "Strategic Alliance",
		Group:         GroupStrategic,
		Applicability: []RelationshipType{RelationshipB2B},
	},
	ModelMentorship: {
		Code:          ModelMentorship,
		Name:          "Mentorship",
		Group:         GroupStrategic,
		Applicability: []RelationshipType{RelationshipB2P, RelationshipP2P},
	},
	ModelBulkPurchasing: {
		Code:          ModelBulkPurchasing,
		Name:          "Bulk Purchasing",
		Group:         GroupPooling,
		Applicability: []RelationshipType{RelationshipB2B},
	},
	ModelCoOwnership: {
		Code:          ModelCoOwnership,
		Name:          "Co-Ownership",
		Group:         GroupPooling,
		Applicability: []RelationshipType{RelationshipB2B, RelationshipP2P},
	},
	ModelResourceExchange: {
		Code:          ModelResourceExchange,
		Name:          "Resource Exchange",
		Group:         GroupPooling,
		Applicability: allRelationships,
	},
	ModelProfessionalHiring: {
		Code:          ModelProfessionalHiring,
		Name:          "Professional Hiring",
		Group:         GroupHiring,
		Applicability: []RelationshipType{RelationshipB2P, RelationshipP2P},
	},
	ModelConsultantHiring: {
		Code:          ModelConsultantHiring,
		Name:          "Consultant Hiring",
		Group:         GroupHiring,
		Applicability: []RelationshipType{RelationshipB2B, RelationshipP2B},
	},
	ModelCompetition: {
		Code:          ModelCompetition,
		Name:          "Competition / RFP",
		Group:         GroupCompetition,
		Applicability: allRelationships,
	},
}

// GetModel resolves a model code. Returns nil for unknown codes.
func GetModel(code string) *CollaborationModel {
	return modelRegistry[code]
}

// AllModels returns the registry contents, order unspecified.
func AllModels() []*CollaborationModel {
	models := make([]*CollaborationModel, 0, len(modelRegistry))
	for _, m := range modelRegistry {
		models = append(models, m)
	}
	return models
}

// AppliesTo reports whether the model lists the relationship type in its
// applicability set.
func (m *CollaborationModel) AppliesTo(rt RelationshipType) bool {
	for _, r := range m.Applicability {
		if r == rt {
			return true
		}
	}
	return false
}
