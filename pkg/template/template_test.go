package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOralTablet(t *testing.T) {
	bag := DataBag{
		Verb:          SelectVerb("tablet", "Orally"),
		Dose:          FormatDoseAmount(1, "tablet"),
		RouteText:     RouteText("Orally"),
		FrequencyText: "twice daily",
	}
	out, err := Render(OralTabletTemplate, bag)
	require.NoError(t, err)
	assert.Equal(t, "Take 1 tablet by mouth twice daily.", out)
}

func TestRenderFractionalTablet(t *testing.T) {
	bag := DataBag{
		Verb:          SelectVerb("tablet", "Orally"),
		Dose:          FormatDoseAmount(0.5, "tablet"),
		RouteText:     RouteText("Orally"),
		FrequencyText: "once daily",
	}
	out, err := Render(OralTabletTemplate, bag)
	require.NoError(t, err)
	assert.Equal(t, "Take ½ tablet by mouth once daily.", out)
}

func TestRenderTopiclick(t *testing.T) {
	bag := DataBag{
		Verb:          SelectVerb("cream", "Topically"),
		Dose:          "4 clicks (10.0 mg)",
		RouteText:     RouteText("Topically"),
		FrequencyText: "twice daily",
	}
	out, err := Render(TopiclickTemplate, bag)
	require.NoError(t, err)
	assert.Equal(t, "Apply 4 clicks (10.0 mg) topically twice daily.", out)
}

func TestRenderPRNRange(t *testing.T) {
	bag := DataBag{
		Verb:          SelectVerb("tablet", "Orally"),
		Dose:          "1-2 tablets",
		RouteText:     RouteText("Orally"),
		FrequencyText: "every 4-6 hours",
	}
	out, err := Render(PRNRangeTemplate, bag)
	require.NoError(t, err)
	assert.Equal(t, "Take 1-2 tablets by mouth every 4-6 hours as needed.", out)
}

func TestRenderUnknownTemplateFallsBackToDefault(t *testing.T) {
	bag := DataBag{Verb: "Take", Dose: "1 tablet", RouteText: "by mouth", FrequencyText: "daily"}
	out, err := Render("NOT_REGISTERED", bag)
	require.NoError(t, err)
	assert.Equal(t, "Take 1 tablet by mouth daily.", out)
}

func TestRenderDeterministic(t *testing.T) {
	bag := DataBag{Verb: "Inject", Dose: "0.5 mL", RouteText: "intramuscularly", FrequencyText: "once weekly"}
	first, err := Render(DefaultTemplate, bag)
	require.NoError(t, err)
	second, err := Render(DefaultTemplate, bag)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectVerbIVOverridesInjection(t *testing.T) {
	assert.Equal(t, "Infuse", SelectVerb("vial", "Intravenously"))
	assert.Equal(t, "Inject", SelectVerb("vial", "Intramuscularly"))
}

func TestPluralizeAbbreviationUnits(t *testing.T) {
	assert.Equal(t, "mg", Pluralize("mg", 250))
	assert.Equal(t, "tablet", Pluralize("tablet", 1))
	assert.Equal(t, "tablets", Pluralize("tablet", 2))
}
