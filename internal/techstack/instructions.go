// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package techstack

// Default instructions when no manifest is recognized.
const (
	DefaultSetup = "# No standard setup file found. Please add manually."
	DefaultRun   = "# No standard run command found. Please add manually."
)

// Instructions are the shell commands shown in the installation and run
// sections.
type Instructions struct {
	Setup string
	Run   string
}

// DetectInstructions picks setup and run commands from the first
// recognized root manifest. Python wins over Node, then Go, Rust, Maven
// and Ruby.
func DetectInstructions(src Source) Instructions {
	in := Instructions{Setup: DefaultSetup, Run: DefaultRun}
	if src == nil {
		return in
	}

	switch {
	case src.FileExists("requirements.txt"):
		in.Setup = "pip install -r requirements.txt"
		switch {
		case src.FileExists("main.py"):
			in.Run = "python main.py"
		case src.FileExists("app.py"):
			in.Run = "python app.py"
		case src.FileExists("manage.py"):
			in.Run = "python manage.py runserver"
		}
	case src.FileExists("package.json"):
		in.Setup = "npm install"
		if pkg, err := ParsePackageJSON(src.ReadTextFile("package.json")); err == nil && pkg.HasScript("start") {
			in.Run = "npm start"
		}
	case src.FileExists("go.mod"):
		in.Setup = "go mod download"
		in.Run = "go run ."
	case src.FileExists("Cargo.toml"):
		in.Setup = "cargo build --release"
		in.Run = "cargo run"
	case src.FileExists("pom.xml"):
		in.Setup = "mvn install"
		in.Run = "mvn exec:java"
	case src.FileExists("Gemfile"):
		in.Setup = "bundle install"
		if src.FileExists("config.ru") {
			in.Run = "bundle exec rackup"
		}
	}
	return in
}

// Prerequisites lists what a reader needs installed, keyed off the
// primary language.
func Prerequisites(language string) []string {
	switch language {
	case "Python":
		return []string{"Python 3.8 or higher", "pip (Python package manager)", "Git"}
	case "JavaScript", "TypeScript":
		return []string{"Node.js (v14 or higher)", "npm (Node package manager)", "Git"}
	case "Go":
		return []string{"Go 1.21 or higher", "Git"}
	case "Rust":
		return []string{"Rust toolchain (rustup, cargo)", "Git"}
	case "Java", "Kotlin":
		return []string{"JDK 17 or higher", "Maven or Gradle", "Git"}
	case "Ruby":
		return []string{"Ruby 3.0 or higher", "Bundler", "Git"}
	default:
		return []string{"Git"}
	}
}
