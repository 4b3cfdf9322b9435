package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketThreatLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  string
	}{
		{0, "safe"},
		{10, "safe"},
		{10.5, "low"},
		{30, "low"},
		{31, "medium"},
		{60, "medium"},
		{61, "high"},
		{100, "high"},
		{150, "high"}, // unclamped URL scores still bucket to high
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, bucketThreatLevel(tc.score), "score %v", tc.score)
	}
}

func TestAnalyzeEmail(t *testing.T) {
	t.Parallel()

	s := NewScannerWithSeed(1)

	t.Run("clean content is safe", func(t *testing.T) {
		result := s.AnalyzeEmail("Hi team, meeting notes attached. See you tomorrow.")
		require.Equal(t, float64(0), result.RiskScore)
		require.Equal(t, "safe", result.ThreatLevel)
		require.Equal(t, false, result.Findings["hasUrgentLanguage"])
	})

	t.Run("each distinct keyword adds 20 points", func(t *testing.T) {
		keywords := []string{"urgent", "verify", "suspended", "click here", "act now"}
		for k := 1; k <= len(keywords); k++ {
			content := strings.Join(keywords[:k], " and ")
			result := s.AnalyzeEmail(content)
			want := float64(20 * k)
			if want > 100 {
				want = 100
			}
			require.Equal(t, want, result.RiskScore, "content %q", content)
			require.Equal(t, bucketThreatLevel(want), result.ThreatLevel)
		}
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		result := s.AnalyzeEmail("URGENT: VERIFY your account")
		require.Equal(t, float64(40), result.RiskScore)
		require.Equal(t, "medium", result.ThreatLevel)
	})

	t.Run("all six keywords cap at 100", func(t *testing.T) {
		result := s.AnalyzeEmail("urgent verify suspended click here act now limited time")
		require.Equal(t, float64(100), result.RiskScore)
		require.Equal(t, "high", result.ThreatLevel)
	})

	t.Run("counts embedded links", func(t *testing.T) {
		result := s.AnalyzeEmail("see https://a.example.com and http://b.example.com/path now")
		require.Equal(t, 2, result.Findings["linkCount"])
	})
}

func TestAnalyzeURL(t *testing.T) {
	t.Parallel()

	s := NewScannerWithSeed(1)

	t.Run("https with clean host is safe", func(t *testing.T) {
		result := s.AnalyzeURL("https://example.com")
		require.Equal(t, float64(0), result.RiskScore)
		require.Equal(t, "safe", result.ThreatLevel)
		require.Equal(t, true, result.Findings["hasHttps"])
	})

	t.Run("plain http scores 30", func(t *testing.T) {
		result := s.AnalyzeURL("http://example.com")
		require.Equal(t, float64(30), result.RiskScore)
		require.Equal(t, "low", result.ThreatLevel)
	})

	t.Run("shortener plus banned substring accumulates past 100", func(t *testing.T) {
		result := s.AnalyzeURL("https://bit.ly/phishing-test")
		require.Equal(t, float64(120), result.RiskScore)
		require.Equal(t, "high", result.ThreatLevel)
		require.Equal(t, true, result.Findings["hasSuspiciousDomain"])
	})

	t.Run("all three checks are additive", func(t *testing.T) {
		result := s.AnalyzeURL("http://tinyurl.com/malicious")
		require.Equal(t, float64(150), result.RiskScore)
		require.Equal(t, "high", result.ThreatLevel)
	})
}

func TestAnalyzeFile(t *testing.T) {
	t.Parallel()

	s := NewScannerWithSeed(1)

	t.Run("dangerous extension scores 50", func(t *testing.T) {
		result := s.AnalyzeFile("payload.exe", []byte{0x4d})
		require.Equal(t, float64(50), result.RiskScore)
		require.Equal(t, "medium", result.ThreatLevel)
		require.Equal(t, true, result.Findings["hasSuspiciousExtension"])
	})

	t.Run("extension check is case-insensitive", func(t *testing.T) {
		result := s.AnalyzeFile("PAYLOAD.EXE", []byte{0x4d})
		require.Equal(t, float64(50), result.RiskScore)
	})

	t.Run("plain document is safe", func(t *testing.T) {
		result := s.AnalyzeFile("notes.txt", []byte("hello"))
		require.Equal(t, float64(0), result.RiskScore)
		require.Equal(t, "safe", result.ThreatLevel)
	})

	t.Run("large file adds 20", func(t *testing.T) {
		big := make([]byte, largeFileThreshold+1)
		result := s.AnalyzeFile("archive.zip", big)
		require.Equal(t, float64(20), result.RiskScore)
		require.Equal(t, "low", result.ThreatLevel)
	})

	t.Run("hash is stable for identical content", func(t *testing.T) {
		a := s.AnalyzeFile("a.txt", []byte("same bytes"))
		b := s.AnalyzeFile("b.txt", []byte("same bytes"))
		require.Equal(t, a.Findings["fileHash"], b.Findings["fileHash"])
		require.Len(t, a.Findings["fileHash"], 64)
	})
}

func TestCheckBreaches(t *testing.T) {
	t.Parallel()

	t.Run("score is 25 per found breach", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			s := NewScannerWithSeed(seed)
			result := s.CheckBreaches("user@example.com")
			found := result.Findings["foundBreaches"].([]string)
			require.Equal(t, float64(25*len(found)), result.RiskScore, "seed %d", seed)
			require.Equal(t, len(found), result.Findings["breachCount"])
			require.Equal(t, bucketThreatLevel(result.RiskScore), result.ThreatLevel)
		}
	})

	t.Run("same seed gives same sample", func(t *testing.T) {
		a := NewScannerWithSeed(42).CheckBreaches("user@example.com")
		b := NewScannerWithSeed(42).CheckBreaches("user@example.com")
		require.Equal(t, a.RiskScore, b.RiskScore)
		require.Equal(t, a.Findings["foundBreaches"], b.Findings["foundBreaches"])
	})

	t.Run("only known breach names are reported", func(t *testing.T) {
		known := map[string]bool{}
		for _, name := range knownBreaches {
			known[name] = true
		}
		for seed := int64(0); seed < 10; seed++ {
			result := NewScannerWithSeed(seed).CheckBreaches(fmt.Sprintf("u%d@example.com", seed))
			for _, name := range result.Findings["foundBreaches"].([]string) {
				require.True(t, known[name])
			}
		}
	})
}
