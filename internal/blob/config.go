package blob

// S3Config holds the connection settings for an S3-compatible store.
type S3Config struct {
	BucketName    string `json:"bucket_name" mapstructure:"bucket_name"`
	Region        string `json:"region" mapstructure:"region"`
	Endpoint      string `json:"endpoint" mapstructure:"endpoint"`
	AccessKey     string `json:"access_key" mapstructure:"access_key"`
	SecretKey     string `json:"-" mapstructure:"secret_key"`
	UseAccelerate bool   `json:"use_accelerate" mapstructure:"use_accelerate"`
}
