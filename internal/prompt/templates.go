// Package prompt holds the fixed instructional templates and composes them
// with an analysis digest.
package prompt

// Template is one fixed kind of business advice.
type Template struct {
	// Kind names the template in logs and routes.
	Kind string
	// Text is the instruction sent to the completion service.
	Text string
	// FailureMessage is the only failure text shown to clients.
	FailureMessage string
}

var (
	Recommendations = Template{
		Kind: "sales recommendations",
		Text: "Based on the provided sales data analysis, provide 10 specific, data-driven recommendations " +
			"to increase sales. Focus on actionable insights that directly relate to the patterns and trends shown " +
			"in the data. Format the response as a numbered list.",
		FailureMessage: "Failed to generate recommendations. Please try again.",
	}

	Strategies = Template{
		Kind: "sales strategies",
		Text: "Based on the provided sales data analysis, provide 3 detailed, data-driven sales strategies. " +
			"Each strategy should include specific steps for implementation and expected outcomes based on the " +
			"patterns and trends in the data. Format the response as a numbered list.",
		FailureMessage: "Failed to generate strategies. Please try again.",
	}

	MarketingFunnels = Template{
		Kind: "marketing funnels",
		Text: "Based on the provided sales data analysis, create 5 targeted marketing funnels/strategies. " +
			"Include specific channels, targeting approaches, and conversion optimization techniques that align with " +
			"the patterns and customer behaviors shown in the data. Format the response as a numbered list.",
		FailureMessage: "Failed to generate marketing funnels. Please try again.",
	}
)

// All returns every template in route order.
func All() []Template {
	return []Template{Recommendations, Strategies, MarketingFunnels}
}
