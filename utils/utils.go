package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/twmb/murmur3"
)

func HashString(s string) uint64 {
	return HashBytes([]byte(s))
}

func HashBytes(bytes ...[]byte) uint64 {
	hash := murmur3.New64()
	for _, b := range bytes {
		// hash.Hash never returns an error on Write
		_, _ = hash.Write(b)
	}
	return hash.Sum64()
}

// ReadMap reads "key|value" lines.
func ReadMap(filePath string) (map[string]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	result := make(map[string]string)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if text == "" {
			continue
		}
		p := strings.SplitN(text, "|", 2)
		if len(p) != 2 {
			return nil, fmt.Errorf("%s:%d: expected key|value", filePath, line)
		}
		result[p[0]] = p[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func ReadSet(filePath string) (map[string]bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	result := make(map[string]bool)
	for scanner.Scan() {
		if text := scanner.Text(); text != "" {
			result[text] = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
