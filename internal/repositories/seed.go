package repositories

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/datatypes"
	"math/rand"
	"strings"
	"time"
)

type sampleJob struct {
	title       string
	description string
	department  string
	location    string
}

var sampleJobs = []sampleJob{
	{"Senior Frontend Developer", "Build responsive web applications with modern JavaScript frameworks.", "Engineering", "San Francisco, CA"},
	{"Backend Engineer - Node.js", "Build scalable APIs and services on a microservices platform.", "Engineering", "Remote"},
	{"Full Stack Developer", "Own features end to end across frontend and backend.", "Engineering", "New York, NY"},
	{"DevOps Engineer", "Build and maintain cloud infrastructure, containers and CI/CD pipelines.", "Engineering", "Austin, TX"},
	{"Data Scientist", "Analyze complex datasets and build models that drive business decisions.", "Data Science", "Boston, MA"},
	{"UX/UI Designer", "Create intuitive user interfaces for our products.", "Design", "Remote"},
	{"Product Manager", "Lead product development from conception to launch.", "Product", "Seattle, WA"},
	{"Mobile Developer - React Native", "Build cross-platform mobile applications.", "Engineering", "Chicago, IL"},
	{"QA Automation Engineer", "Develop and maintain automated test suites for web and mobile.", "Engineering", "Remote"},
	{"Technical Lead", "Lead a team of developers and drive technical excellence.", "Engineering", "San Francisco, CA"},
	{"Cloud Architect", "Design and implement cloud infrastructure solutions.", "Engineering", "Remote"},
	{"Machine Learning Engineer", "Build and deploy machine learning models at scale.", "Data Science", "New York, NY"},
	{"Frontend Engineer - React", "Build modern web applications using React.", "Engineering", "Los Angeles, CA"},
	{"Backend Developer - Python", "Develop backend services using Python and Django or Flask.", "Engineering", "Remote"},
	{"Site Reliability Engineer", "Keep production systems reliable, observable and fast.", "Engineering", "Austin, TX"},
	{"Data Engineer", "Build and maintain data pipelines and warehouses.", "Data Science", "Boston, MA"},
	{"UI Developer", "Bridge the gap between design and engineering.", "Engineering", "Remote"},
	{"Senior Product Designer", "Lead design for key product areas and the design system.", "Design", "San Francisco, CA"},
	{"API Developer", "Design and build RESTful APIs and their documentation.", "Engineering", "New York, NY"},
	{"Security Engineer", "Protect our systems and data from security threats.", "Engineering", "Remote"},
	{"Junior Frontend Developer", "Grow your HTML, CSS and JavaScript skills in a supportive team.", "Engineering", "Chicago, IL"},
	{"Database Administrator", "Manage and tune our database systems.", "Engineering", "Remote"},
	{"Technical Product Manager", "Work closely with engineering teams on technical products.", "Product", "Seattle, WA"},
	{"Software Engineer - Java", "Build enterprise applications using Java and Spring Boot.", "Engineering", "Remote"},
	{"Lead UX Researcher", "Run user research and usability testing to inform product decisions.", "Design", "San Francisco, CA"},
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth",
		"David", "Susan", "Richard", "Jessica", "Joseph", "Sarah", "Thomas", "Karen", "Charles", "Nancy",
		"Daniel", "Lisa", "Matthew", "Emily", "Andrew", "Michelle", "Kevin", "Amanda", "Brian", "Olivia",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Wilson", "Anderson", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Thompson",
		"White", "Harris", "Clark", "Lewis", "Walker", "Young", "King", "Nguyen", "Patel", "Chen",
	}
	emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "company.com"}
	skills       = []string{
		"JavaScript", "React", "Node.js", "Python", "Java", "AWS", "Docker", "Kubernetes", "TypeScript", "Go",
		"Rust", "SQL", "PostgreSQL", "GraphQL", "Redis", "CI/CD", "Agile", "Django", "Spring", "Azure",
		"GCP", "Linux", "iOS", "Android", "Machine Learning", "Figma", "UI/UX", "Leadership",
	}
	noteTemplates = []string{
		"Good cultural fit for the team.",
		"Requires additional technical screening.",
		"Excellent communication skills.",
		"Previous experience in similar role.",
		"Available to start immediately.",
		"Requires visa sponsorship.",
		"Great portfolio and project examples.",
	}
	extraJobTags = []string{"Remote", "Flexible", "Senior", "Junior", "Team Lead", "Agile", "Scrum"}

	// early stages are more populated
	stageWeights = []float64{0.25, 0.20, 0.15, 0.12, 0.10, 0.10, 0.08}
	// ratings 1 through 5
	ratingWeights = []float64{0.10, 0.20, 0.30, 0.25, 0.15}
)

type seeder struct {
	rnd *rand.Rand
	now time.Time
}

func newSeeder(rnd *rand.Rand) *seeder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &seeder{rnd: rnd, now: time.Now().UTC()}
}

func (s *seeder) jobs() []models.Job {
	return lo.Map(sampleJobs, func(sample sampleJob, i int) models.Job {
		return models.Job{
			ID:          uuid.NewString(),
			Title:       sample.title,
			Slug:        models.Slugify(sample.title),
			Status:      models.JobActive,
			Tags:        datatypes.JSONSlice[string](s.jobTags(sample.title)),
			Order:       i + 1,
			Description: sample.description,
			Department:  sample.department,
			Location:    sample.location,
			CreatedAt:   s.now,
			UpdatedAt:   s.now,
		}
	})
}

func (s *seeder) jobTags(title string) []string {
	lower := strings.ToLower(title)

	var tags []string
	switch {
	case strings.Contains(lower, "frontend"):
		tags = []string{"React", "JavaScript", "TypeScript", "CSS"}
	case strings.Contains(lower, "backend"):
		tags = []string{"Node.js", "Python", "Java", "API"}
	case strings.Contains(lower, "full stack"):
		tags = []string{"React", "Node.js", "MongoDB", "TypeScript"}
	case strings.Contains(lower, "devops"):
		tags = []string{"AWS", "Docker", "Kubernetes", "CI/CD"}
	case strings.Contains(lower, "mobile"):
		tags = []string{"React Native", "iOS", "Android"}
	case strings.Contains(lower, "data"):
		tags = []string{"Python", "SQL", "Machine Learning"}
	case strings.Contains(lower, "ux"):
		tags = []string{"Figma", "UI/UX", "Research"}
	case strings.Contains(lower, "product"):
		tags = []string{"Strategy", "Roadmap", "Agile"}
	case strings.Contains(lower, "qa"):
		tags = []string{"Testing", "Automation", "Quality"}
	default:
		tags = []string{"Technology", "Software", "Development"}
	}

	extra := pick(s.rnd, extraJobTags)
	if len(tags) < 4 && !lo.Contains(tags, extra) {
		tags = append(tags, extra)
	}
	return tags
}

func (s *seeder) candidates(jobs []models.Job, total int) []models.Candidate {
	if len(jobs) == 0 {
		return nil
	}

	perJob := (total + len(jobs) - 1) / len(jobs)
	candidates := make([]models.Candidate, 0, total)

	for _, job := range jobs {
		for i := 0; i < perJob && len(candidates) < total; i++ {
			candidates = append(candidates, s.candidate(job.ID))
		}
	}
	return candidates
}

func (s *seeder) candidate(jobID string) models.Candidate {
	firstName, lastName := pick(s.rnd, firstNames), pick(s.rnd, lastNames)
	applied := s.now.AddDate(0, 0, -s.rnd.Intn(90))

	c := models.Candidate{
		ID:          uuid.NewString(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       s.email(firstName, lastName),
		Phone:       fmt.Sprintf("+1-%d-%d-%d", 100+s.rnd.Intn(900), 100+s.rnd.Intn(900), 1000+s.rnd.Intn(9000)),
		Stage:       models.Stages[weightedIndex(s.rnd, stageWeights)],
		JobID:       jobID,
		AppliedDate: applied,
		Rating:      lo.ToPtr(weightedIndex(s.rnd, ratingWeights) + 1),
		Tags:        datatypes.JSONSlice[string](s.candidateTags()),
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	}

	if s.rnd.Float64() > 0.5 {
		c.Notes = pick(s.rnd, noteTemplates)
	}
	return c
}

func (s *seeder) email(firstName, lastName string) string {
	first, last := strings.ToLower(firstName), strings.ToLower(lastName)
	domain := pick(s.rnd, emailDomains)

	variants := []string{
		first + "." + last,
		first + last,
		first[:1] + last,
		first + "_" + last,
	}
	return pick(s.rnd, variants) + "@" + domain
}

func (s *seeder) candidateTags() []string {
	count := 2 + s.rnd.Intn(4)
	perm := s.rnd.Perm(len(skills))[:count]
	return lo.Map(perm, func(i int, _ int) string { return skills[i] })
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.Intn(len(items))]
}

func weightedIndex(rnd *rand.Rand, weights []float64) int {
	r := rnd.Float64()
	sum := 0.0
	for i, w := range weights {
		sum += w
		if r <= sum {
			return i
		}
	}
	return len(weights) - 1
}
