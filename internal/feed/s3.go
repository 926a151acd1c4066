package feed

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/samber/do"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Lister is the subset of the S3 API the feed needs.
type Lister interface {
	s3.ListObjectsV2APIClient
	HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Source reads entries from object metadata, heading objects in parallel.
type S3Source struct {
	client Lister
	bucket string
}

func NewS3Source(i *do.Injector) (*S3Source, error) {
	return &S3Source{
		client: do.MustInvoke[*s3.Client](i),
		bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (s *S3Source) Entries(ctx context.Context) ([]Entry, error) {
	pager := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &s.bucket,
	})

	var (
		mu      sync.Mutex
		entries []Entry
	)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(16)
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		objs := lo.Filter(page.Contents, func(o s3types.Object, _ int) bool {
			return published(lo.FromPtr(o.Key))
		})

		for _, obj := range objs {
			obj := obj
			group.Go(func() error {
				out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
					Bucket: &s.bucket,
					Key:    obj.Key,
				})
				if err != nil {
					return err
				}

				mu.Lock()
				entries = append(entries, Entry{Metadata: out.Metadata, Updated: lo.FromPtr(out.LastModified)})
				mu.Unlock()
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
