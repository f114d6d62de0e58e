package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps only the stage's own flags",
			args:    []string{"-a", "https://api.legeclair.fr", "-l", "debug"},
			allowed: []string{"-a"},
			want:    []string{"-a", "https://api.legeclair.fr"},
		},
		{
			name:    "equals form survives intact",
			args:    []string{"--config=prod.json", "-s", "prod.db"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=prod.json"},
		},
		{
			name:    "mixed forms keep their order",
			args:    []string{"--config=one.json", "-c", "two.json", "-t", "5s"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=one.json", "-c", "two.json"},
		},
		{
			name:    "foreign flags and positionals drop out",
			args:    []string{"-t", "5s", "--verbose=1", "legeclair.db"},
			allowed: []string{"-a", "-s"},
			want:    []string{},
		},
		{
			name:    "trailing flag without a value stays alone",
			args:    []string{"-s"},
			allowed: []string{"-s"},
			want:    []string{"-s"},
		},
		{
			name:    "a dash-leading token is not consumed as a value",
			args:    []string{"-l", "-a"},
			allowed: []string{"-l", "-a"},
			want:    []string{"-l", "-a"},
		},
		{
			name:    "equals value may itself start with a dash",
			args:    []string{"--config=-odd.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=-odd.json"},
		},
		{
			name:    "several allowed flags in one pass",
			args:    []string{"-a", "http://localhost:3000/api", "-s", "legeclair.db", "--other", "x"},
			allowed: []string{"-a", "-s"},
			want:    []string{"-a", "http://localhost:3000/api", "-s", "legeclair.db"},
		},
		{
			name:    "nothing in, nothing out",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "repeated flag keeps every occurrence",
			args:    []string{"-l", "info", "-l", "debug"},
			allowed: []string{"-l"},
			want:    []string{"-l", "info", "-l", "debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"legeclair", "-c", "conf/dev.json"}
		assert.Equal(t, "conf/dev.json", JsonConfigFlags())
	})

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"legeclair", "-config", "conf/prod.json"}
		assert.Equal(t, "conf/prod.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"legeclair", "-a", "http://localhost:3000/api"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("later occurrence wins", func(t *testing.T) {
		os.Args = []string{"legeclair", "-c", "first.json", "-config", "second.json"}
		assert.Equal(t, "second.json", JsonConfigFlags())
	})
}
