package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHasThirteenModels(t *testing.T) {
	assert.Len(t, AllModels(), 13)
}

func TestGetModel(t *testing.T) {
	model := GetModel(ModelTaskBased)
	require.NotNil(t, model)
	assert.Equal(t, "1.1", model.Code)
	assert.Equal(t, GroupDelivery, model.Group)

	assert.Nil(t, GetModel("9.9"))
	assert.Nil(t, GetModel(""))
}

func TestModelApplicability(t *testing.T) {
	tests := []struct {
		code   string
		accept []RelationshipType
		reject []RelationshipType
	}{
		{ModelTaskBased, []RelationshipType{RelationshipB2B, RelationshipB2P, RelationshipP2B, RelationshipP2P}, nil},
		{ModelConsortium, []RelationshipType{RelationshipB2B}, []RelationshipType{RelationshipB2P, RelationshipP2P}},
		{ModelProjectJV, []RelationshipType{RelationshipB2B, RelationshipB2P}, []RelationshipType{RelationshipP2B}},
		{ModelMentorship, []RelationshipType{RelationshipB2P, RelationshipP2P}, []RelationshipType{RelationshipB2B}},
		{ModelCoOwnership, []RelationshipType{RelationshipB2B, RelationshipP2P}, []RelationshipType{RelationshipB2P}},
		{ModelProfessionalHiring, []RelationshipType{RelationshipB2P, RelationshipP2P}, []RelationshipType{RelationshipB2B, RelationshipP2B}},
		{ModelConsultantHiring, []RelationshipType{RelationshipB2B, RelationshipP2B}, []RelationshipType{RelationshipP2P}},
		{ModelCompetition, []RelationshipType{RelationshipB2B, RelationshipP2P}, nil},
	}

	for _, tt := range tests {
		model := GetModel(tt.code)
		require.NotNil(t, model, tt.code)
		for _, rt := range tt.accept {
			assert.True(t, model.AppliesTo(rt), "%s should accept %s", tt.code, rt)
		}
		for _, rt := range tt.reject {
			assert.False(t, model.AppliesTo(rt), "%s should reject %s", tt.code, rt)
		}
	}
}

func TestEveryModelHasNameAndGroup(t *testing.T) {
	for _, model := range AllModels() {
		assert.NotEmpty(t, model.Name, model.Code)
		assert.NotEmpty(t, model.Group, model.Code)
		assert.NotEmpty(t, model.Applicability, model.Code)
	}
}
