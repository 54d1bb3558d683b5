package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"ENABLED":  "true",
		"EMPTY":    "",
		"ORIGINS":  " https://a.dev, ,https://b.dev ",
		"BAD_BOOL": "perhaps",
	}

	if got := GetString(cfg, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString(EMPTY) = %q, want %q", got, "fallback")
	}
	if got := GetInt(cfg, "PORT", 8080); got != 9090 {
		t.Errorf("GetInt(PORT) = %d, want 9090", got)
	}
	if got := GetInt(cfg, "BAD_INT", 7); got != 7 {
		t.Errorf("GetInt(BAD_INT) = %d, want 7", got)
	}
	if got := GetBool(cfg, "ENABLED", false); !got {
		t.Error("GetBool(ENABLED) = false, want true")
	}
	if got := GetBool(cfg, "BAD_BOOL", true); !got {
		t.Error("GetBool(BAD_BOOL) should fall back to default")
	}

	origins := GetStrings(cfg, "ORIGINS")
	if len(origins) != 2 || origins[0] != "https://a.dev" || origins[1] != "https://b.dev" {
		t.Errorf("GetStrings(ORIGINS) = %v", origins)
	}
	if GetStrings(nil, "ORIGINS") != nil {
		t.Error("GetStrings(nil) should be nil")
	}
}

type fakeLister struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
	err   error
}

func (f *fakeLister) GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestFetchParameters(t *testing.T) {
	lister := &fakeLister{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/studio/prod/SUPABASE_JWT_SECRET"), Value: aws.String("s3cret")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/studio/prod/PORT"), Value: aws.String("9000")}},
		},
	}}

	overlay, err := fetchParameters(context.Background(), lister, "/studio/prod")
	if err != nil {
		t.Fatalf("fetchParameters() error = %v", err)
	}
	if overlay["SUPABASE_JWT_SECRET"] != "s3cret" || overlay["PORT"] != "9000" {
		t.Errorf("fetchParameters() = %v", overlay)
	}

	merged := Merge(map[string]string{"PORT": "8080", "DB_TYPE": "supa"}, overlay)
	if merged["PORT"] != "9000" || merged["DB_TYPE"] != "supa" {
		t.Errorf("Merge() = %v", merged)
	}
}

func TestFetchParameters_Error(t *testing.T) {
	lister := &fakeLister{err: errors.New("access denied")}
	if _, err := fetchParameters(context.Background(), lister, "/studio"); err == nil {
		t.Error("fetchParameters() expected error")
	}
}
