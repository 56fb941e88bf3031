// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/mdgen/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "mdgen/0.1"
	defaultDataDir   = "data"
	defaultBundleDir = "bundles"
	defaultAddr      = ":8080"
)

// pipelineConfig assembles the full pipeline configuration from the config
// file, environment, and .secrets/. Flag values override where commands pass
// them in afterward.
func pipelineConfig() types.PipelineConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = defaultTimeout
	}
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = defaultUserAgent
	}

	cfg := types.PipelineConfig{
		HTTP: httpCfg,
		Storage: types.StorageConfig{
			Bucket:    secretDefault("s3-bucket-name", viper.GetString("storage.bucket")),
			AccessKey: secretDefault("aws-access-key-id", viper.GetString("storage.access_key")),
			SecretKey: secretDefault("aws-secret-access-key", viper.GetString("storage.secret_key")),
			Region:    secretDefault("aws-region", viper.GetString("storage.region")),
		},
		DocumentCloud: types.DocumentCloudConfig{
			HTTPConfig:   httpCfg,
			ClientID:     secretDefault("extract-client-id", viper.GetString("document_cloud.client_id")),
			ClientSecret: secretDefault("extract-client-secret", viper.GetString("document_cloud.client_secret")),
			BaseURL:      viper.GetString("document_cloud.base_url"),
			PollInterval: viper.GetDuration("document_cloud.poll_interval"),
			MaxPolls:     viper.GetInt("document_cloud.max_polls"),
			BundleDir:    viper.GetString("document_cloud.bundle_dir"),
		},
		PageCloud: types.PageCloudConfig{
			HTTPConfig: httpCfg,
			Token:      secretDefault("article-api-token", viper.GetString("page_cloud.token")),
			BaseURL:    viper.GetString("page_cloud.base_url"),
		},
		History: types.HistoryConfig{
			DataDir:    viper.GetString("history.data_dir"),
			MaxResults: viper.GetInt("history.max_results"),
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("server.addr"),
			MaxUploadMB: viper.GetInt64("server.max_upload_mb"),
		},
	}

	if cfg.DocumentCloud.BundleDir == "" {
		cfg.DocumentCloud.BundleDir = defaultBundleDir
	}
	if cfg.History.DataDir == "" {
		cfg.History.DataDir = defaultDataDir
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	return cfg
}
