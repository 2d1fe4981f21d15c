// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// StaticCredential is an access key pair supplied with a request.
type StaticCredential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// ParseCredential parses "ACCESS_KEY_ID:SECRET_ACCESS_KEY" with an
// optional third ":SESSION_TOKEN" part.
func ParseCredential(s string) (StaticCredential, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return StaticCredential{}, fmt.Errorf("%w: credential must be ACCESS_KEY_ID:SECRET_ACCESS_KEY", ErrAuthentication)
	}
	cred := StaticCredential{AccessKeyID: parts[0], SecretAccessKey: parts[1]}
	if len(parts) == 3 {
		cred.SessionToken = parts[2]
	}
	return cred, nil
}

// loadOptions turns the credential settings into AWS config options. A
// static credential wins over a profile; neither means the default chain.
func loadOptions(cfg ClientConfig) ([]func(*awsconfig.LoadOptions) error, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	switch {
	case cfg.Credential != "":
		cred, err := ParseCredential(cfg.Credential)
		if err != nil {
			return nil, err
		}
		provider := credentials.NewStaticCredentialsProvider(cred.AccessKeyID, cred.SecretAccessKey, cred.SessionToken)
		opts = append(opts, awsconfig.WithCredentialsProvider(provider))
	case cfg.Profile != "":
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	return opts, nil
}
