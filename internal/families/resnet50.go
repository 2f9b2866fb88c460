package families

import (
	"fmt"

	"github.com/ekisa-team/samplegen/internal/model"
	"github.com/ekisa-team/samplegen/mapsafe"
)

const (
	// ResNet50Name is the registered family name.
	ResNet50Name = "resnet50"

	// ResNet50ID is the ONNX model zoo artifact.
	ResNet50ID = "https://github.com/onnx/models/raw/main/validated/vision/classification/resnet/model/resnet50-v1-7.onnx"

	resnetTask   = "image-classification"
	resnetSize   = 224
	resnetColors = 3
)

var (
	imagenetMean = [resnetColors]float32{0.485, 0.456, 0.406}
	imagenetStd  = [resnetColors]float32{0.229, 0.224, 0.225}
)

// ResNet50 is an image classifier downloaded pre-exported.
type ResNet50 struct {
	model.Base
	model.DirectDownload
}

// NewResNet50 is the resnet50 factory.
func NewResNet50(opts model.Options, tools model.Tools) model.Model {
	id := opts.ID
	if id == "" {
		id = ResNet50ID
	}
	task := opts.Task
	if task == "" {
		task = resnetTask
	}

	return &ResNet50{
		Base:           model.NewBase(id, task),
		DirectDownload: model.NewDirectDownload(id, tools.Downloader),
	}
}

// Name returns the family name.
func (*ResNet50) Name() string {
	return ResNet50Name
}

// Preprocess converts an HWC RGB image with values in [0, 1] into a
// normalized NCHW "data" tensor.
func (*ResNet50) Preprocess(sample model.Sample) (model.Inputs, error) {
	img, ok := mapsafe.Lookup[[]float32](sample, "image")
	if !ok {
		return nil, missing("image")
	}

	const plane = resnetSize * resnetSize
	if len(img) != plane*resnetColors {
		return nil, fmt.Errorf("image must be %dx%dx%d, got %d values", resnetSize, resnetSize, resnetColors, len(img))
	}

	data := make([]float32, len(img))
	for p := range plane {
		for c := range resnetColors {
			data[c*plane+p] = (img[p*resnetColors+c] - imagenetMean[c]) / imagenetStd[c]
		}
	}

	return model.Inputs{
		"data":  data,
		"shape": []int64{1, resnetColors, resnetSize, resnetSize},
	}, nil
}
