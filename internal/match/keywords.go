package match

// Category buckets keywords by what they say about a posting. The lists
// below are configuration, not logic; extend them without touching the
// scorer.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryDatabase   Category = "database"
	CategorySoft       Category = "soft"
	CategoryExperience Category = "experience"
)

// categoryWeights bias the overall score toward hard skills. Categories
// absent from a posting drop out of both numerator and denominator.
var categoryWeights = map[Category]float64{
	CategoryTechnical:  0.4,
	CategoryDatabase:   0.3,
	CategorySoft:       0.2,
	CategoryExperience: 0.1,
}

var categoryKeywords = map[Category][]string{
	CategoryTechnical: {
		"javascript", "typescript", "python", "java", "golang", "ruby",
		"php", "swift", "kotlin", "rust", "scala", "elixir",
		"react", "angular", "vue", "svelte", "next.js", "node.js",
		"express", "django", "flask", "spring", "rails", "laravel",
		"html", "css", "sass", "tailwind", "webpack", "vite",
		"docker", "kubernetes", "terraform", "ansible", "jenkins",
		"aws", "azure", "gcp", "linux", "git", "github",
		"rest", "graphql", "grpc", "api", "microservices",
		"jest", "cypress", "selenium", "junit", "pytest",
	},
	CategoryDatabase: {
		"sql", "mysql", "postgresql", "postgres", "sqlite", "mariadb",
		"mongodb", "redis", "cassandra", "dynamodb", "elasticsearch",
		"oracle", "snowflake", "bigquery", "nosql", "firebase",
	},
	CategorySoft: {
		"leadership", "communication", "teamwork", "collaboration",
		"mentoring", "mentorship", "adaptability", "creativity",
		"analytical", "organized", "initiative", "ownership",
		"empathy", "presentation", "negotiation",
	},
	CategoryExperience: {
		"senior", "junior", "lead", "principal", "staff", "intern",
		"internship", "graduate", "mid-level", "entry-level",
		"manager", "architect", "experienced", "years",
	},
}

// categoryPhrases are multi-word terms that tokenization would split.
// They are matched by substring search against the normalized text.
var categoryPhrases = map[string]Category{
	"machine learning":       CategoryTechnical,
	"data analysis":          CategoryTechnical,
	"unit testing":           CategoryTechnical,
	"code review":            CategoryTechnical,
	"version control":        CategoryTechnical,
	"continuous integration": CategoryTechnical,
	"rest api":               CategoryTechnical,
	"data modeling":          CategoryDatabase,
	"database design":        CategoryDatabase,
	"query optimization":     CategoryDatabase,
	"problem solving":        CategorySoft,
	"team player":            CategorySoft,
	"attention to detail":    CategorySoft,
	"time management":        CategorySoft,
	"critical thinking":      CategorySoft,
	"years of experience":    CategoryExperience,
	"entry level":            CategoryExperience,
	"track record":           CategoryExperience,
}

// keywordCategory is the inverted single-token lookup, built once.
var keywordCategory = func() map[string]Category {
	m := make(map[string]Category)
	for cat, words := range categoryKeywords {
		for _, w := range words {
			m[w] = cat
		}
	}
	return m
}()
