package dashboard

import (
	"encoding/json"
	"testing"

	"infinium/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjection_MarshalJSON_EmptyLists(t *testing.T) {
	tests := []struct {
		view   View
		key    string
		want   string
		absent []string
	}{
		{view: ViewFreshness, key: "freshness", want: `[]`, absent: []string{"recipes", "family"}},
		{view: ViewRecipes, key: "recipes", want: `[]`, absent: []string{"freshness", "family"}},
		{view: ViewFamily, key: "family", want: `[]`, absent: []string{"freshness", "recipes"}},
		{view: ViewAlerts, key: "alerts", want: `{"high":[],"medium":[],"low":[]}`, absent: []string{"family"}},
		{view: ViewShopping, key: "shopping", want: `{"high":[],"medium":[],"low":[]}`, absent: []string{"alerts"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			p, ok := Project(tt.view, model.Dataset{})
			require.True(t, ok)

			raw, err := json.Marshal(p)
			require.NoError(t, err)

			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(raw, &fields))
			require.Contains(t, fields, tt.key)
			assert.JSONEq(t, tt.want, string(fields[tt.key]))
			for _, key := range tt.absent {
				assert.NotContains(t, fields, key)
			}
		})
	}
}

func TestProjection_MarshalJSON_EmptyDashboardAndHistory(t *testing.T) {
	p, ok := Project(ViewDashboard, model.Dataset{})
	require.True(t, ok)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"recentAlerts":[]`)

	p, ok = Project(ViewFoodAnalysis, model.Dataset{})
	require.True(t, ok)
	raw, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"history":[]`)
}

func TestProjection_MarshalJSON_RoundTrip(t *testing.T) {
	ds := model.Dataset{Family: []model.FamilyMember{{ID: "1", Name: "Sarah Johnson"}}}
	p, ok := Project(ViewFamily, ds)
	require.True(t, ok)

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var back Projection
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, ViewFamily, back.View)
	require.Len(t, back.Family, 1)
	assert.Equal(t, "Sarah Johnson", back.Family[0].Name)
}
