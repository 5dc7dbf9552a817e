package lexicon

import (
	"sync"

	"github.com/jonathan/placement-matcher/internal/types"
)

func lang(canonical string, synonyms ...string) Entry {
	return Entry{Canonical: canonical, Category: types.CategoryLanguage, Synonyms: synonyms}
}

func framework(canonical string, synonyms ...string) Entry {
	return Entry{Canonical: canonical, Category: types.CategoryFramework, Synonyms: synonyms}
}

func tool(canonical string, synonyms ...string) Entry {
	return Entry{Canonical: canonical, Category: types.CategoryTool, Synonyms: synonyms}
}

func soft(canonical string, synonyms ...string) Entry {
	return Entry{Canonical: canonical, Category: types.CategorySoftSkill, Synonyms: synonyms}
}

func domain(canonical string, synonyms ...string) Entry {
	return Entry{Canonical: canonical, Category: types.CategoryDomain, Synonyms: synonyms}
}

// defaultEntries is the built-in lexicon, tuned for campus placement resumes.
// Names that collide with common prose (go, c, express, spring, rest) are
// only matched in qualified forms such as "golang" or "c language". Rust,
// swift, dart and ruby stay bare; they rarely occur as ordinary words in
// resumes and job descriptions.
var defaultEntries = []Entry{
	// Languages
	lang("python", "py", "python3"),
	lang("java", "core java", "java se"),
	lang("javascript", "js", "ecmascript", "es6"),
	lang("typescript", "ts"),
	lang("c programming", "c language", "ansi c", "embedded c"),
	lang("c++", "cpp", "cplusplus"),
	lang("c#", "csharp", "c sharp"),
	lang("golang", "go language", "go lang", "go programming"),
	lang("rust"),
	lang("kotlin"),
	lang("swift"),
	lang("ruby"),
	lang("php"),
	lang("scala"),
	lang("perl"),
	lang("dart"),
	lang("matlab"),
	lang("sql", "structured query language"),
	lang("html", "html5"),
	lang("css", "css3"),
	lang("bash", "shell scripting", "shell script"),
	lang("verilog"),

	// Frameworks and libraries
	framework("react", "react.js", "reactjs"),
	framework("react native", "react-native"),
	framework("angular", "angularjs", "angular.js"),
	framework("vue", "vue.js", "vuejs"),
	framework("next.js", "nextjs"),
	framework("node.js", "nodejs"),
	framework("express.js", "expressjs"),
	framework("django"),
	framework("flask"),
	framework("fastapi"),
	framework("spring boot", "springboot", "spring framework"),
	framework("hibernate"),
	framework(".net", "dotnet", ".net core"),
	framework("asp.net", "asp.net core"),
	framework("laravel"),
	framework("ruby on rails", "rails", "ror"),
	framework("flutter"),
	framework("tensorflow"),
	framework("pytorch", "torch"),
	framework("keras"),
	framework("scikit-learn", "sklearn", "scikit learn"),
	framework("pandas"),
	framework("numpy"),
	framework("matplotlib"),
	framework("opencv"),
	framework("bootstrap"),
	framework("tailwind css", "tailwind", "tailwindcss"),
	framework("jquery"),
	framework("redux"),
	framework("graphql"),
	framework("junit"),
	framework("selenium"),
	framework("hadoop"),
	framework("apache spark", "pyspark"),

	// Tools and platforms
	tool("git"),
	tool("github"),
	tool("gitlab"),
	tool("docker"),
	tool("kubernetes", "k8s"),
	tool("jenkins"),
	tool("terraform"),
	tool("ansible"),
	tool("aws", "amazon web services"),
	tool("azure", "microsoft azure"),
	tool("gcp", "google cloud", "google cloud platform"),
	tool("linux", "ubuntu"),
	tool("mysql"),
	tool("postgresql", "postgres", "psql"),
	tool("mongodb", "mongo"),
	tool("redis"),
	tool("sqlite"),
	tool("firebase"),
	tool("elasticsearch", "elastic search"),
	tool("kafka", "apache kafka"),
	tool("rabbitmq"),
	tool("airflow", "apache airflow"),
	tool("bigquery"),
	tool("jira"),
	tool("figma"),
	tool("postman"),
	tool("tableau"),
	tool("power bi", "powerbi"),
	tool("excel", "ms excel", "microsoft excel"),
	tool("jupyter", "jupyter notebook"),
	tool("ci/cd", "continuous integration", "continuous delivery", "continuous deployment"),
	tool("rest api", "rest apis", "restful", "restful api", "restful apis"),
	tool("microservices", "microservice", "micro services"),
	tool("vs code", "vscode", "visual studio code"),
	tool("android studio"),
	tool("nginx"),
	tool("grafana"),
	tool("prometheus"),
	tool("webpack"),
	tool("npm"),
	tool("maven"),
	tool("gradle"),
	tool("heroku"),
	tool("autocad", "auto cad"),
	tool("solidworks"),
	tool("ansys"),

	// Soft skills
	soft("communication", "communication skills", "verbal communication", "written communication"),
	soft("leadership", "team leadership"),
	soft("teamwork", "team player", "collaboration"),
	soft("problem solving", "problem-solving"),
	soft("time management"),
	soft("critical thinking"),
	soft("public speaking"),
	soft("adaptability"),
	soft("project management"),

	// Domains
	domain("machine learning", "ml"),
	domain("deep learning"),
	domain("artificial intelligence", "ai"),
	domain("natural language processing", "nlp"),
	domain("computer vision"),
	domain("data science"),
	domain("data analysis", "data analytics"),
	domain("data structures", "dsa", "data structures and algorithms"),
	domain("algorithms"),
	domain("object oriented programming", "oop", "oops", "object-oriented programming"),
	domain("dbms", "database management systems", "database management"),
	domain("operating systems"),
	domain("computer networks", "networking"),
	domain("cloud computing"),
	domain("cybersecurity", "cyber security", "information security", "infosec"),
	domain("blockchain"),
	domain("web development", "web dev"),
	domain("full stack development", "full stack", "full-stack", "fullstack"),
	domain("devops"),
	domain("embedded systems"),
	domain("internet of things", "iot"),
	domain("big data"),
	domain("software testing", "manual testing", "automation testing"),
	domain("unit testing"),
	domain("system design"),
	domain("agile", "scrum", "kanban"),
	domain("ui/ux", "ui ux", "user experience", "user interface design"),
	domain("vlsi"),
	domain("signal processing"),
	domain("statistics"),
	domain("digital marketing"),
	domain("product management"),
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	return MustNew(defaultEntries)
})

// Default returns the built-in lexicon. The same instance is shared by all callers.
func Default() *Lexicon {
	return defaultLexicon()
}
