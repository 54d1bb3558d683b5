package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// parameterLister is the subset of the SSM client used to read a parameter tree.
type parameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// LoadSSM overlays parameters stored under SSM_PARAMETER_PATH onto config.
// The last path element of each parameter becomes the key, so
// /studio/prod/SUPABASE_JWT_SECRET is exposed as SUPABASE_JWT_SECRET.
// When SSM_PARAMETER_PATH is unset the config is returned untouched.
func LoadSSM(ctx context.Context, config map[string]string) (map[string]string, error) {
	parameterPath := GetString(config, "SSM_PARAMETER_PATH", "")
	if parameterPath == "" {
		return config, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(GetString(config, "AWS_REGION", "us-east-1")))
	if err != nil {
		return config, fmt.Errorf("failed to load AWS config: %w", err)
	}

	overlay, err := fetchParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath)
	if err != nil {
		return config, err
	}

	log.Info().Str("path", parameterPath).Int("parameters", len(overlay)).Msg("Loaded configuration from SSM")
	return Merge(config, overlay), nil
}

func fetchParameters(ctx context.Context, client parameterLister, parameterPath string) (map[string]string, error) {
	overlay := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read SSM parameters under %s: %w", parameterPath, err)
		}
		for _, parameter := range page.Parameters {
			if parameter.Name == nil || parameter.Value == nil {
				continue
			}
			overlay[path.Base(*parameter.Name)] = *parameter.Value
		}
	}

	return overlay, nil
}
