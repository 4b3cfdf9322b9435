package services

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// AnalysisResult is the output of a single heuristic run.
type AnalysisResult struct {
	ThreatLevel string
	RiskScore   float64
	Findings    map[string]interface{}
}

// Suspicious keyword set for email content analysis
var suspiciousKeywords = []string{
	"urgent",
	"verify",
	"suspended",
	"click here",
	"act now",
	"limited time",
}

// Known URL shortener domains
var suspiciousDomains = []string{
	"bit.ly",
	"tinyurl.com",
	"shortened.link",
}

// File extensions that score as dangerous
var suspiciousExtensions = []string{".exe", ".scr", ".bat", ".cmd"}

// Well-known historical breaches checked by the breach heuristic
var knownBreaches = []string{"Adobe", "LinkedIn", "Yahoo", "Equifax"}

var linkPattern = regexp.MustCompile(`https?://[^\s]+`)

const largeFileThreshold = 5 * 1024 * 1024

// Scanner runs the scoring heuristics. The breach check samples randomly
// (a stand-in for a real breach-database lookup), so the random source is
// injectable for deterministic tests.
type Scanner struct {
	rng *rand.Rand
}

// NewScanner returns a Scanner with a time-seeded random source.
func NewScanner() *Scanner {
	return NewScannerWithSeed(time.Now().UnixNano())
}

// NewScannerWithSeed returns a Scanner with a fixed seed.
func NewScannerWithSeed(seed int64) *Scanner {
	return &Scanner{rng: rand.New(rand.NewSource(seed))}
}

// bucketThreatLevel maps a risk score to its qualitative level. Scores above
// 100 still bucket to "high"; "critical" is never produced here.
func bucketThreatLevel(riskScore float64) string {
	switch {
	case riskScore > 60:
		return "high"
	case riskScore > 30:
		return "medium"
	case riskScore > 10:
		return "low"
	default:
		return "safe"
	}
}

// AnalyzeEmail scans free-text email content for phishing indicators.
// Each distinct matched keyword adds 20 points, capped at 100.
func (s *Scanner) AnalyzeEmail(content string) AnalysisResult {
	lower := strings.ToLower(content)

	foundKeywords := []string{}
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(lower, keyword) {
			foundKeywords = append(foundKeywords, keyword)
		}
	}

	riskScore := float64(len(foundKeywords) * 20)
	if riskScore > 100 {
		riskScore = 100
	}

	return AnalysisResult{
		ThreatLevel: bucketThreatLevel(riskScore),
		RiskScore:   riskScore,
		Findings: map[string]interface{}{
			"suspiciousKeywords": foundKeywords,
			"hasUrgentLanguage":  len(foundKeywords) > 0,
			"linkCount":          len(linkPattern.FindAllString(content, -1)),
			"analysis":           "Email analyzed for phishing indicators",
		},
	}
}

// AnalyzeURL scores a URL string: +30 without https, +40 for a known
// shortener domain, +80 for a banned substring. The checks are additive and
// the total is deliberately not clamped to 100 before bucketing.
func (s *Scanner) AnalyzeURL(url string) AnalysisResult {
	hasHTTPS := strings.HasPrefix(url, "https://")

	hasSuspiciousDomain := false
	for _, domain := range suspiciousDomains {
		if strings.Contains(url, domain) {
			hasSuspiciousDomain = true
			break
		}
	}

	var riskScore float64
	if !hasHTTPS {
		riskScore += 30
	}
	if hasSuspiciousDomain {
		riskScore += 40
	}
	if strings.Contains(url, "phishing") || strings.Contains(url, "malicious") {
		riskScore += 80
	}

	return AnalysisResult{
		ThreatLevel: bucketThreatLevel(riskScore),
		RiskScore:   riskScore,
		Findings: map[string]interface{}{
			"hasHttps":            hasHTTPS,
			"hasSuspiciousDomain": hasSuspiciousDomain,
			"domainAge":           "Unknown",
			"reputation":          "Unknown",
			"analysis":            "URL analyzed for malicious indicators",
		},
	}
}

// AnalyzeFile hashes the file content for identification and scores the
// filename extension and size. No byte-level signature scanning occurs.
func (s *Scanner) AnalyzeFile(filename string, content []byte) AnalysisResult {
	sum := sha256.Sum256(content)
	fileHash := hex.EncodeToString(sum[:])

	lowerName := strings.ToLower(filename)
	hasSuspiciousExtension := false
	for _, ext := range suspiciousExtensions {
		if strings.HasSuffix(lowerName, ext) {
			hasSuspiciousExtension = true
			break
		}
	}

	var riskScore float64
	if hasSuspiciousExtension {
		riskScore += 50
	}
	if len(content) > largeFileThreshold {
		riskScore += 20
	}

	return AnalysisResult{
		ThreatLevel: bucketThreatLevel(riskScore),
		RiskScore:   riskScore,
		Findings: map[string]interface{}{
			"fileHash":               fileHash,
			"fileSize":               len(content),
			"hasSuspiciousExtension": hasSuspiciousExtension,
			"scanDate":               time.Now().UTC().Format(time.RFC3339),
			"analysis":               "File analyzed for malicious content",
		},
	}
}

// CheckBreaches samples the known breach list at random (placeholder for a
// real breach-database lookup). Each breach is included independently with
// probability 0.3; each hit adds 25 points.
func (s *Scanner) CheckBreaches(email string) AnalysisResult {
	foundBreaches := []string{}
	for _, name := range knownBreaches {
		if s.rng.Float64() > 0.7 {
			foundBreaches = append(foundBreaches, name)
		}
	}

	riskScore := float64(len(foundBreaches) * 25)

	return AnalysisResult{
		ThreatLevel: bucketThreatLevel(riskScore),
		RiskScore:   riskScore,
		Findings: map[string]interface{}{
			"foundBreaches": foundBreaches,
			"breachCount":   len(foundBreaches),
			"checkedDate":   time.Now().UTC().Format(time.RFC3339),
			"analysis":      "Email checked against known data breaches",
		},
	}
}
