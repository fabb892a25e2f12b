package testcase

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"acrunner/internal/problem/model"
	appErr "acrunner/pkg/errors"
)

const (
	inputExt  = ".in"
	outputExt = ".out"
)

var (
	casePairPattern  = regexp.MustCompile(`^(\d+)\.(in|out)$`)
	caseInputPattern = regexp.MustCompile(`^(\d+)\.in$`)
)

// Sample is one case received from the browser tool.
type Sample struct {
	Input  string
	Output string
}

// NextIndex returns one more than the largest index in dir, or 1.
// A missing directory counts as empty.
func NextIndex(dir string) int {
	maxIndex := 0
	for idx := range scanStems(dir, casePairPattern) {
		if idx > maxIndex {
			maxIndex = idx
		}
	}
	return maxIndex + 1
}

// CollectCases returns the cases in dir in ascending numeric order. Paths
// keep the stem found on disk, so 01.in pairs with 01.out.
// The .out path is referenced whether or not the file exists.
func CollectCases(dir string) []model.TestCaseFile {
	stems := scanStems(dir, caseInputPattern)
	indices := make([]int, 0, len(stems))
	for idx := range stems {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	cases := make([]model.TestCaseFile, 0, len(indices))
	for _, idx := range indices {
		stem := stems[idx]
		cases = append(cases, model.TestCaseFile{
			Index:      idx,
			InputPath:  filepath.Join(dir, stem+inputExt),
			OutputPath: filepath.Join(dir, stem+outputExt),
		})
	}
	return cases
}

// SaveCases appends samples to dir starting at NextIndex(dir) and returns
// the assigned indices. Content is newline-normalized before writing.
func SaveCases(dir string, samples []Sample) ([]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, appErr.Wrapf(err, appErr.TestCaseWriteFailed, "create case dir %s", dir)
	}
	next := NextIndex(dir)
	assigned := make([]int, 0, len(samples))
	for _, sample := range samples {
		if err := writeCaseFile(InputPath(dir, next), sample.Input); err != nil {
			return assigned, err
		}
		if err := writeCaseFile(OutputPath(dir, next), sample.Output); err != nil {
			return assigned, err
		}
		assigned = append(assigned, next)
		next++
	}
	return assigned, nil
}

// ReadInput returns the raw input of a case.
func ReadInput(tc model.TestCaseFile) (string, error) {
	data, err := os.ReadFile(tc.InputPath)
	if err != nil {
		return "", appErr.Wrapf(err, appErr.TestCaseReadFailed, "read input of case %d", tc.Index)
	}
	return string(data), nil
}

// ReadExpected returns the expected output of a case, or "" when the
// .out file is missing or not a regular file.
func ReadExpected(tc model.TestCaseFile) (string, error) {
	info, err := os.Stat(tc.OutputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", appErr.Wrapf(err, appErr.TestCaseReadFailed, "stat expected output of case %d", tc.Index)
	}
	if !info.Mode().IsRegular() {
		return "", nil
	}
	data, err := os.ReadFile(tc.OutputPath)
	if err != nil {
		return "", appErr.Wrapf(err, appErr.TestCaseReadFailed, "read expected output of case %d", tc.Index)
	}
	return string(data), nil
}

// InputPath returns the path of the input file for index.
func InputPath(dir string, index int) string {
	return filepath.Join(dir, strconv.Itoa(index)+inputExt)
}

// OutputPath returns the path of the expected-output file for index.
func OutputPath(dir string, index int) string {
	return filepath.Join(dir, strconv.Itoa(index)+outputExt)
}

func writeCaseFile(path, content string) error {
	if err := os.WriteFile(path, []byte(NormalizeLineEndings(content)), 0o644); err != nil {
		return appErr.Wrapf(err, appErr.TestCaseWriteFailed, "write %s", filepath.Base(path))
	}
	return nil
}

// scanStems maps each positive index in dir to the filename stem it was found
// under. When several stems parse to one index (1.in and 01.in), the
// unpadded stem wins, then the lexically smallest.
func scanStems(dir string, pattern *regexp.Regexp) map[int]string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	stems := make(map[int]string, len(entries))
	for _, entry := range entries {
		matches := pattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}
		idx, err := strconv.Atoi(matches[1])
		if err != nil || idx <= 0 {
			continue
		}
		stem := matches[1]
		if current, ok := stems[idx]; ok && !preferStem(stem, current, idx) {
			continue
		}
		stems[idx] = stem
	}
	return stems
}

func preferStem(candidate, current string, idx int) bool {
	canonical := strconv.Itoa(idx)
	if current == canonical {
		return false
	}
	if candidate == canonical {
		return true
	}
	return candidate < current
}
