package config

// DefaultUserAgents is the built-in identity pool. Real desktop browser
// strings; rotated per request by the fetcher.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36",
}

// DefaultBlockMarkers flag anti-bot challenge responses.
var DefaultBlockMarkers = []string{
	"captcha",
	"datadome",
	"cf-challenge",
	"accès refusé",
	"access denied",
	"vérification de sécurité",
}

// DefaultVocabulary is the reference skill list shared by the CV and the
// posting side of the matcher.
var DefaultVocabulary = []string{
	"Python", "SQL", "Java", "JavaScript", "TypeScript", "C#", "C++", "PHP", "Ruby", "Go",
	"Angular", "React", "Vue", "Node.js", "Django", "Flask", "Spring", "Laravel", "Ruby on Rails",
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Terraform",
	"MySQL", "PostgreSQL", "Oracle", "MongoDB", "Cassandra", "Redis",
	"Hadoop", "Spark", "Kafka", "Airflow", "Databricks", "dbt",
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Data Mining",
	"Agile", "Scrum", "DevOps", "CI/CD", "Jenkins", "Git",
}
