// File: internal/analytics/analytics.go
package analytics

import (
	"sort"

	"bluestock_client/internal/company"
)

// NameCount pairs a company name with a pros or cons count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProsVsCons is one grouped-bar row of the pros/cons comparison chart.
type ProsVsCons struct {
	Company string `json:"company"`
	Pros    int    `json:"pros"`
	Cons    int    `json:"cons"`
}

// SectorShare is one slice of the sector distribution.
type SectorShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Stats is the aggregate payload behind GET /analytics.
type Stats struct {
	TopProsCompanies   []NameCount   `json:"topProsCompanies"`
	TopConsCompanies   []NameCount   `json:"topConsCompanies"`
	ProsVsCons         []ProsVsCons  `json:"prosVsCons"`
	SectorDistribution []SectorShare `json:"sectorDistribution"`
}

// Compute derives the analytics payload from the current directory. The
// original application served these numbers pre-baked; computing them from
// the same companies keeps the two endpoints consistent.
func Compute(companies []company.Company) Stats {
	stats := Stats{
		TopProsCompanies:   make([]NameCount, 0, len(companies)),
		TopConsCompanies:   make([]NameCount, 0, len(companies)),
		ProsVsCons:         make([]ProsVsCons, 0, len(companies)),
		SectorDistribution: []SectorShare{},
	}

	sectors := make(map[string]int)
	for _, c := range companies {
		stats.TopProsCompanies = append(stats.TopProsCompanies, NameCount{Name: c.CompanyName, Count: len(c.MLResults.Pros)})
		stats.TopConsCompanies = append(stats.TopConsCompanies, NameCount{Name: c.CompanyName, Count: len(c.MLResults.Cons)})
		stats.ProsVsCons = append(stats.ProsVsCons, ProsVsCons{
			Company: c.CompanyName,
			Pros:    len(c.MLResults.Pros),
			Cons:    len(c.MLResults.Cons),
		})
		sectors[c.Industry]++
	}

	sort.SliceStable(stats.TopProsCompanies, func(i, j int) bool {
		return stats.TopProsCompanies[i].Count > stats.TopProsCompanies[j].Count
	})
	sort.SliceStable(stats.TopConsCompanies, func(i, j int) bool {
		return stats.TopConsCompanies[i].Count > stats.TopConsCompanies[j].Count
	})

	for name, count := range sectors {
		stats.SectorDistribution = append(stats.SectorDistribution, SectorShare{Name: name, Value: count})
	}
	sort.Slice(stats.SectorDistribution, func(i, j int) bool {
		if stats.SectorDistribution[i].Value != stats.SectorDistribution[j].Value {
			return stats.SectorDistribution[i].Value > stats.SectorDistribution[j].Value
		}
		return stats.SectorDistribution[i].Name < stats.SectorDistribution[j].Name
	})

	return stats
}
