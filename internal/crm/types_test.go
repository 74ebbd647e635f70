package crm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagJSON(t *testing.T) {
	t.Run("accepts numeric and boolean encodings", func(t *testing.T) {
		for raw, want := range map[string]Flag{
			`1`: true, `0`: false, `true`: true, `false`: false, `null`: false,
		} {
			var f Flag
			require.NoError(t, json.Unmarshal([]byte(raw), &f))
			assert.Equal(t, want, f, "input %s", raw)
		}
	})

	t.Run("marshals as 1/0", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Public Flag `json:"is_public"`
			Today  Flag `json:"contacted_today"`
		}{Public: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"is_public":1,"contacted_today":0}`, string(out))
	})
}

func TestMoneyJSON(t *testing.T) {
	t.Run("accepts number and string", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`5000.5`), &m))
		assert.Equal(t, Money(5000.5), m)

		require.NoError(t, json.Unmarshal([]byte(`"1200"`), &m))
		assert.Equal(t, Money(1200), m)
	})

	t.Run("garbage and null count as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &m))
		assert.Zero(t, m)
		require.NoError(t, json.Unmarshal([]byte(`null`), &m))
		assert.Zero(t, m)
	})
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 12.5, ParseAmount(" 12.5 "))
	assert.Zero(t, ParseAmount("abc"))
	assert.Zero(t, ParseAmount(""))
}

func TestLeadStatusValid(t *testing.T) {
	for _, s := range LeadStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, LeadStatus("Archived").Valid())
}

func TestPayloadValidation(t *testing.T) {
	t.Run("lead requires name, status, source", func(t *testing.T) {
		err := Validate(LeadPayload{Name: "Acme"})
		require.Error(t, err)

		err = Validate(LeadPayload{Name: "Acme", Status: StatusNew, Source: SourceReferral})
		assert.NoError(t, err)
	})

	t.Run("contact requires name and a real email", func(t *testing.T) {
		require.Error(t, Validate(CreateContactPayload{Name: "Acme", Email: "not-an-email"}))
		assert.NoError(t, Validate(CreateContactPayload{Name: "Acme", Email: "ops@acme.test"}))
	})

	t.Run("proposal requires subject", func(t *testing.T) {
		require.Error(t, Validate(ProposalPayload{}))
		assert.NoError(t, Validate(ProposalPayload{Subject: "Q3 rollout"}))
	})
}
