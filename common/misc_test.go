package common_test

import (
	"testing"

	"dutyroster/common"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestBindingPathID(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should parse a numeric path id", func(t *testing.T) {
		ctx := &gin.Context{Params: gin.Params{{Key: "id", Value: "123"}}}
		id, err := common.BindingPathID(ctx)
		Expect(err).To(BeNil())
		Expect(id).To(Equal(types.ID(123)))
	})

	t.Run("should reject a malformed path id", func(t *testing.T) {
		ctx := &gin.Context{Params: gin.Params{{Key: "id", Value: "abc"}}}
		id, err := common.BindingPathID(ctx)
		Expect(id).To(BeZero())
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(Equal("invalid id 'abc'"))
	})

	t.Run("should reject a missing path id", func(t *testing.T) {
		ctx := &gin.Context{}
		_, err := common.BindingPathID(ctx)
		Expect(err).ToNot(BeNil())
	})
}
