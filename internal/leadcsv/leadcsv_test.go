package leadcsv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadterm/internal/crm"
)

func TestExport(t *testing.T) {
	t.Run("filtered pair", func(t *testing.T) {
		leads := []crm.Lead{
			{ID: 1, Name: "Acme", Company: "Acme Corp", Status: crm.StatusNew, Value: 5000, Currency: "USD", Source: crm.SourceWebsite, Phone: "555-0100"},
			{ID: 2, Name: "Beta", Company: "Beta LLC", Status: crm.StatusQualified, Value: 1200.5, Currency: "EUR", Source: crm.SourceReferral, Phone: ""},
		}
		want := "ID,Name,Company,Status,Value,Currency,Source,Phone\n" +
			`1,"Acme","Acme Corp",New,5000,USD,Website,555-0100` + "\n" +
			`2,"Beta","Beta LLC",Qualified,1200.5,EUR,Referral,`
		assert.Equal(t, want, Export(leads))
	})

	t.Run("empty set is header only", func(t *testing.T) {
		assert.Equal(t, ExportHeader, Export(nil))
	})

	t.Run("quotes in names pass through unescaped", func(t *testing.T) {
		out := Export([]crm.Lead{{ID: 3, Name: `Say "hi"`, Status: crm.StatusNew}})
		assert.Contains(t, out, `3,"Say "hi"",`)
	})
}

type fakeCreator struct {
	payloads []crm.LeadPayload
	failName string
}

func (f *fakeCreator) CreateLead(_ context.Context, p crm.LeadPayload) error {
	if f.failName != "" && p.Name == f.failName {
		return errors.New("boom")
	}
	f.payloads = append(f.payloads, p)
	return nil
}

func TestImport(t *testing.T) {
	t.Run("creates rows with defaults", func(t *testing.T) {
		in := strings.NewReader("name,company,value\nAcme,Acme Corp,5000\nBeta,,\n")
		api := &fakeCreator{}
		res, err := Import(context.Background(), in, api)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Created)
		assert.Equal(t, 0, res.Skipped)
		require.Len(t, api.payloads, 2)

		first := api.payloads[0]
		assert.Equal(t, "Acme", first.Name)
		assert.Equal(t, "Acme Corp", first.Company)
		assert.Equal(t, float64(5000), first.Value)
		assert.Equal(t, first.Value, first.LeadValue)
		assert.Equal(t, crm.StatusNew, first.Status)
		assert.Equal(t, crm.SourceWebsite, first.Source)
		assert.Equal(t, "USD", first.Currency)
	})

	t.Run("header columns are case insensitive", func(t *testing.T) {
		in := strings.NewReader("Name,Status,Source\nAcme,Qualified,Referral\n")
		api := &fakeCreator{}
		res, err := Import(context.Background(), in, api)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, crm.StatusQualified, api.payloads[0].Status)
		assert.Equal(t, crm.LeadSource("Referral"), api.payloads[0].Source)
	})

	t.Run("missing name column is fatal", func(t *testing.T) {
		in := strings.NewReader("company,value\nAcme Corp,5000\n")
		_, err := Import(context.Background(), in, &fakeCreator{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("blank name skips the row", func(t *testing.T) {
		in := strings.NewReader("name,company\n,Acme Corp\nBeta,Beta LLC\n")
		api := &fakeCreator{}
		res, err := Import(context.Background(), in, api)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "row 2")
	})

	t.Run("unknown status skips the row", func(t *testing.T) {
		in := strings.NewReader("name,status\nAcme,Bogus\n")
		api := &fakeCreator{}
		res, err := Import(context.Background(), in, api)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "Bogus")
	})

	t.Run("api failure skips, later rows still run", func(t *testing.T) {
		in := strings.NewReader("name\nAcme\nBeta\n")
		api := &fakeCreator{failName: "Acme"}
		res, err := Import(context.Background(), in, api)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, "Beta", api.payloads[0].Name)
	})
}
