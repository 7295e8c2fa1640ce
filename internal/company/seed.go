// File: internal/company/seed.go
package company

import "github.com/gosimple/slug"

// seedCompanies returns the demo directory the original application shipped
// as client-side mock data.
func seedCompanies() []Company {
	companies := []Company{
		{
			ID:          "1",
			OwnerID:     "1",
			CompanyName: "Tech Innovations Ltd",
			Address:     "123 Tech Street",
			City:        "Mumbai",
			State:       "Maharashtra",
			Country:     "India",
			PostalCode:  "400001",
			Website:     "https://techinnovations.com",
			Industry:    "Technology",
			FoundedDate: "2015-06-15",
			Description: "Leading provider of innovative technology solutions",
			SocialLinks: map[string]string{
				"linkedin": "https://linkedin.com/company/techinnovations",
				"twitter":  "https://twitter.com/techinnovations",
			},
			MLResults: MLResults{
				Pros: []MLIndicator{
					{Metric: "Revenue Growth", Value: "+15.3%", Year: "2024"},
					{Metric: "Net Profit", Value: "+22.1%", Year: "2024"},
					{Metric: "EPS Growth", Value: "+18.5%", Year: "2024"},
				},
				Cons: []MLIndicator{
					{Metric: "Debt to Equity", Value: "+8.2%", Year: "2024"},
					{Metric: "Operating Margin", Value: "-3.1%", Year: "2024"},
				},
			},
		},
		{
			ID:          "2",
			OwnerID:     "2",
			CompanyName: "Green Energy Solutions",
			Address:     "456 Eco Lane",
			City:        "Bangalore",
			State:       "Karnataka",
			Country:     "India",
			PostalCode:  "560001",
			Website:     "https://greenenergy.com",
			Industry:    "Renewable Energy",
			FoundedDate: "2018-03-20",
			Description: "Pioneering sustainable energy solutions",
			SocialLinks: map[string]string{
				"linkedin": "https://linkedin.com/company/greenenergy",
			},
			MLResults: MLResults{
				Pros: []MLIndicator{
					{Metric: "Revenue Growth", Value: "+28.5%", Year: "2024"},
					{Metric: "Asset Turnover", Value: "+12.3%", Year: "2024"},
					{Metric: "Cash Flow", Value: "+19.7%", Year: "2024"},
				},
				Cons: []MLIndicator{
					{Metric: "Current Ratio", Value: "-5.4%", Year: "2024"},
				},
			},
		},
		{
			ID:          "3",
			OwnerID:     "3",
			CompanyName: "Healthcare Plus",
			Address:     "789 Medical Center",
			City:        "Delhi",
			State:       "Delhi",
			Country:     "India",
			PostalCode:  "110001",
			Industry:    "Healthcare",
			FoundedDate: "2010-01-10",
			Description: "Comprehensive healthcare services",
			MLResults: MLResults{
				Pros: []MLIndicator{
					{Metric: "Net Profit", Value: "+11.2%", Year: "2024"},
					{Metric: "Return on Equity", Value: "+14.8%", Year: "2024"},
				},
				Cons: []MLIndicator{
					{Metric: "Debt to Equity", Value: "+12.6%", Year: "2024"},
					{Metric: "Operating Margin", Value: "-4.8%", Year: "2024"},
					{Metric: "Current Ratio", Value: "-2.9%", Year: "2024"},
				},
			},
		},
	}

	for i := range companies {
		companies[i].Slug = slug.Make(companies[i].CompanyName)
	}
	return companies
}
