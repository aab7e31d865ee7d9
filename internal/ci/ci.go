// Package ci maps CI-provider environment variables to candidate commit
// range specifications. It performs no git calls itself: callers resolve
// each candidate with rev-list and use the first one that yields commits.
package ci

import (
	"errors"
	"fmt"
)

// Provider identifies a supported CI environment.
type Provider string

const (
	GitLab        Provider = "gitlab"
	GitHubActions Provider = "github-actions"
	Travis        Provider = "travis"
	Jenkins       Provider = "jenkins"
	CircleCI      Provider = "circleci"
	Bitbucket     Provider = "bitbucket"
)

// noBefore is the all-zero SHA CI providers use for "no previous commit".
const noBefore = "0000000000000000000000000000000000000000"

var (
	ErrNotCI       = errors.New("not running in a CI environment")
	ErrUnsupported = errors.New("current CI is not detected or supported")
)

// Env reads one environment variable; split out so tests can fake the
// environment without mutating the process.
type Env func(key string) string

// Detect identifies the CI provider from the environment. It returns
// ErrNotCI outside CI and ErrUnsupported for unrecognized providers.
func Detect(getenv Env) (Provider, error) {
	if getenv("CI") == "" && getenv("JENKINS_HOME") == "" {
		return "", ErrNotCI
	}
	switch {
	case getenv("GITLAB_CI") != "":
		return GitLab, nil
	case getenv("GITHUB_ACTIONS") != "":
		return GitHubActions, nil
	case getenv("TRAVIS") != "":
		return Travis, nil
	case getenv("JENKINS_HOME") != "":
		return Jenkins, nil
	case getenv("CIRCLECI") != "":
		return CircleCI, nil
	case getenv("BITBUCKET_COMMIT") != "":
		return Bitbucket, nil
	}
	return "", ErrUnsupported
}

// RangeCandidates returns commit range specs for the provider, in priority
// order. Callers try each until rev-list produces a non-empty commit list.
func RangeCandidates(p Provider, getenv Env) ([]string, error) {
	switch p {
	case GitLab:
		return gitlabRanges(getenv), nil
	case GitHubActions:
		return githubRanges(getenv), nil
	case Travis:
		return travisRanges(getenv), nil
	case Jenkins:
		return jenkinsRanges(getenv), nil
	case CircleCI:
		return circleRanges(getenv), nil
	case Bitbucket:
		return bitbucketRanges(getenv), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, p)
}

func headOr(getenv Env, key string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return "HEAD"
}

func gitlabRanges(getenv Env) []string {
	var out []string
	if before := getenv("CI_COMMIT_BEFORE_SHA"); before != "" && before != noBefore {
		out = append(out, before+"~1...")
	}
	out = append(out, headOr(getenv, "CI_COMMIT_SHA")+"~1...")
	return out
}

func githubRanges(getenv Env) []string {
	var out []string
	if before := getenv("GITHUB_PUSH_BEFORE_SHA"); before != "" && before != noBefore {
		out = append(out, before+"...")
	}
	if base := getenv("GITHUB_PULL_BASE_SHA"); base != "" && base != noBefore {
		out = append(out, base+"..")
	}
	if base := getenv("GITHUB_PUSH_BASE_SHA"); base != "" && base != "null" {
		out = append(out, base+"...")
	}
	if branch := getenv("GITHUB_DEFAULT_BRANCH"); branch != "" {
		out = append(out, branch+"...")
	}
	out = append(out, headOr(getenv, "GITHUB_SHA")+"~1...")
	return out
}

func travisRanges(getenv Env) []string {
	var out []string
	if r := getenv("TRAVIS_COMMIT_RANGE"); r != "" {
		out = append(out, r)
	}
	out = append(out, headOr(getenv, "TRAVIS_COMMIT")+"~1...")
	return out
}

func jenkinsRanges(getenv Env) []string {
	head := headOr(getenv, "GIT_COMMIT")
	var out []string
	if prev := getenv("GIT_PREVIOUS_COMMIT"); prev != "" {
		out = append(out, prev+"..."+head)
	}
	out = append(out, head+"~1...")
	return out
}

func circleRanges(getenv Env) []string {
	var out []string
	if r := getenv("CIRCLE_RANGE"); r != "" && r[0] != '.' {
		out = append(out, r)
	}
	out = append(out, headOr(getenv, "CIRCLE_SHA1")+"~1...")
	return out
}

func bitbucketRanges(getenv Env) []string {
	return []string{headOr(getenv, "BITBUCKET_COMMIT") + "~1..."}
}
