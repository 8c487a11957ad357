// internal/matching/dto.go
package matching

// DTOs for API responses

type CompatibilityResponse struct {
	OpportunityID int64        `json:"opportunity_id"`
	ProviderID    int64        `json:"provider_id"`
	Result        *MatchResult `json:"result"`
}

type MatchesResponse struct {
	Matches []*Match `json:"matches"`
	Count   int      `json:"count"`
}

type TriggerResponse struct {
	OpportunityID int64  `json:"opportunity_id"`
	Status        string `json:"status"`
}
