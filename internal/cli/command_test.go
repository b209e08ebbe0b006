package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

const referenceCSV = `Model,Price,Storage,Camera,Looks
M1,250,16,12,5
M2,200,16,8,3
M3,300,32,16,4
M4,275,32,8,4
M5,225,16,16,2
`

type CommandTestSuite struct {
	suite.Suite
	dir    string
	input  string
	output string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (s *CommandTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.input = filepath.Join(s.dir, "data.csv")
	s.output = filepath.Join(s.dir, "result.csv")
	s.Require().NoError(os.WriteFile(s.input, []byte(referenceCSV), 0o644))
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
}

func (s *CommandTestSuite) execute(args ...string) int {
	return Execute(args, s.stdout, s.stderr)
}

func (s *CommandTestSuite) TestSuccess() {
	code := s.execute(s.input, "0.25,0.25,0.25,0.25", "-,+,+,+", s.output)

	s.Equal(ExitOK, code, s.stderr.String())
	s.Contains(s.stdout.String(), "Results saved to "+s.output)

	data, err := os.ReadFile(s.output)
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	s.Require().Len(lines, 6)
	s.Equal("Model,Price,Storage,Camera,Looks,Topsis Score,Rank", lines[0])
	s.True(strings.HasPrefix(lines[3], "M3,300,32,16,4,0.69163"))
	s.True(strings.HasSuffix(lines[3], ",1"))
	s.True(strings.HasSuffix(lines[2], ",5"))
}

func (s *CommandTestSuite) TestShowAndFlags() {
	code := s.execute("--show", "--precision", "3", "--parallel", "2", s.input, "1,1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitOK, code, s.stderr.String())
	s.Contains(s.stdout.String(), "0.691632")

	data, err := os.ReadFile(s.output)
	s.Require().NoError(err)
	s.Contains(string(data), "M3,300,32,16,4,0.692,1")
}

func (s *CommandTestSuite) TestWrongArity() {
	code := s.execute(s.input, "1,1,1,1", "-,+,+,+")

	s.Equal(ExitUsage, code)
	s.Contains(s.stderr.String(), "Usage:")
	s.NoFileExists(s.output)
}

func (s *CommandTestSuite) TestUnknownFlag() {
	code := s.execute("--bogus", s.input, "1,1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitUsage, code)
	s.NoFileExists(s.output)
}

func (s *CommandTestSuite) TestFailuresWriteNothing() {
	tests := []struct {
		name    string
		input   string
		weights string
		impacts string
		message string
	}{
		{"invalid impact", "", "1,1,1,1", "+,x,+,+", "Error: invalid impact"},
		{"dimension mismatch", "", "1,1,1", "-,+,+,+", "Error: dimension mismatch"},
		{"unparsable weight", "", "1,a,1,1", "-,+,+,+", "An unexpected error occurred"},
		{"missing file", "missing.csv", "1,1,1,1", "-,+,+,+", "Error: file not found"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.stderr.Reset()
			input := s.input
			if tt.input != "" {
				input = filepath.Join(s.dir, tt.input)
			}

			code := s.execute(input, tt.weights, tt.impacts, s.output)

			s.Equal(ExitError, code)
			s.Contains(s.stderr.String(), tt.message)
			s.NoFileExists(s.output)
		})
	}
}

func (s *CommandTestSuite) TestDegenerateColumn() {
	s.Require().NoError(os.WriteFile(s.input, []byte("id,a,b\nx,0,1\ny,0,2\n"), 0o644))

	code := s.execute(s.input, "1,1", "+,+", s.output)

	s.Equal(ExitError, code)
	s.Contains(s.stderr.String(), "degenerate column")
	s.NoFileExists(s.output)
}

func (s *CommandTestSuite) TestExistingResultIsKeptOnFailure() {
	s.Require().NoError(os.WriteFile(s.output, []byte("previous"), 0o644))

	code := s.execute(s.input, "1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitError, code)
	data, err := os.ReadFile(s.output)
	s.Require().NoError(err)
	s.Equal("previous", string(data))
}

func (s *CommandTestSuite) TestFlagOverridesInvalidEnv() {
	s.T().Setenv("TOPSIS_PARALLELISM", "0")

	code := s.execute("--parallel", "2", s.input, "1,1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitOK, code, s.stderr.String())
	s.FileExists(s.output)
}

func (s *CommandTestSuite) TestInvalidEnvWithoutOverride() {
	s.T().Setenv("TOPSIS_PARALLELISM", "0")

	code := s.execute(s.input, "1,1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitUsage, code)
	s.Contains(s.stderr.String(), "TOPSIS_PARALLELISM")
	s.NoFileExists(s.output)
}

func (s *CommandTestSuite) TestServerEnvIgnored() {
	s.T().Setenv("TOPSIS_SERVER_PORT", "70000")

	code := s.execute(s.input, "1,1,1,1", "-,+,+,+", s.output)

	s.Equal(ExitOK, code, s.stderr.String())
	s.FileExists(s.output)
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
