// Package textract adapts AWS Textract table analysis to port.TableDetector.
package textract

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"logbookocr/internal/blockgraph"
	"logbookocr/internal/config"
)

// AnalyzeAPI is the part of the Textract client the detector calls.
type AnalyzeAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// Detector implements port.TableDetector with a synchronous AnalyzeDocument
// call using the TABLES feature.
type Detector struct {
	api AnalyzeAPI
}

// NewDetector creates a Textract client from config.
func NewDetector(cfg *config.TextractConfig) (*Detector, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var clientOpts []func(*textract.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *textract.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return NewDetectorWithAPI(textract.NewFromConfig(awsCfg, clientOpts...)), nil
}

// NewDetectorWithAPI wraps an existing client or test double.
func NewDetectorWithAPI(api AnalyzeAPI) *Detector {
	return &Detector{api: api}
}

func (d *Detector) DetectBlocks(ctx context.Context, image []byte) ([]blockgraph.Block, error) {
	out, err := d.api.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     &types.Document{Bytes: image},
		FeatureTypes: []types.FeatureType{types.FeatureTypeTables},
	})
	if err != nil {
		return nil, fmt.Errorf("textract analyze document: %w", err)
	}
	return ConvertBlocks(out.Blocks), nil
}

// ConvertBlocks maps Textract blocks onto graph blocks. Only CHILD
// relationships are kept.
func ConvertBlocks(in []types.Block) []blockgraph.Block {
	blocks := make([]blockgraph.Block, 0, len(in))
	for i := range in {
		src := &in[i]
		b := blockgraph.Block{
			ID:          aws.ToString(src.Id),
			Type:        blockgraph.ParseBlockType(string(src.BlockType)),
			Text:        aws.ToString(src.Text),
			Selected:    src.SelectionStatus == types.SelectionStatusSelected,
			RowIndex:    int(aws.ToInt32(src.RowIndex)),
			ColumnIndex: int(aws.ToInt32(src.ColumnIndex)),
		}
		for _, rel := range src.Relationships {
			if rel.Type == types.RelationshipTypeChild {
				b.ChildIDs = append(b.ChildIDs, rel.Ids...)
			}
		}
		blocks = append(blocks, b)
	}
	return blocks
}
