package shader

// GLSL sources for the built-in passes. They target the renderer's shader
// prelude, which supplies position, uv, projectionMatrix and modelViewMatrix.

// Pass-through vertex shader shared by copy, threshold and vignette
const passThroughVertexShader = `
varying vec2 vUv;

void main() {
    vUv = uv;
    gl_Position = projectionMatrix * modelViewMatrix * vec4(position, 1.0);
}
`

// Fragment shader for copying a texture with an opacity multiplier
const copyFragmentShader = `
uniform float opacity;
uniform sampler2D tDiffuse;

varying vec2 vUv;

void main() {
    vec4 texel = texture2D(tDiffuse, vUv);
    gl_FragColor = opacity * texel;
}
`

// Vertex shader for the separable blur. Moves the start coordinate back by
// half the kernel so the loop in the fragment stage is centered on vUv.
const convolutionVertexShader = `
uniform vec2 uImageIncrement;

varying vec2 vUv;

void main() {
    vUv = uv - ((KERNEL_SIZE_FLOAT - 1.0) / 2.0) * uImageIncrement;
    gl_Position = projectionMatrix * modelViewMatrix * vec4(position, 1.0);
}
`

// Fragment shader for one axis of the separable blur
const convolutionFragmentShader = `
uniform float cKernel[KERNEL_SIZE_INT];
uniform sampler2D tDiffuse;
uniform vec2 uImageIncrement;

varying vec2 vUv;

void main() {
    vec2 imageCoord = vUv;
    vec4 sum = vec4(0.0, 0.0, 0.0, 0.0);

    for (int i = 0; i < KERNEL_SIZE_INT; i++) {
        sum += texture2D(tDiffuse, imageCoord) * cKernel[i];
        imageCoord += uImageIncrement;
    }

    gl_FragColor = sum;
}
`

// Fragment shader for the radial threshold bloom. Bright texels of tMap
// are smeared toward center and mixed with the diffuse input.
const thresholdFragmentShader = `
uniform float steps;
uniform float strength;
uniform float expo;
uniform float threshold;
uniform sampler2D tDiffuse;
uniform sampler2D tMap;
uniform vec2 center;

varying vec2 vUv;

void main() {
    vec2 s = vUv;

    vec3 total = vec3(0.0);
    vec2 d = (center - vUv) / steps;
    float w = 1.0;

    // Fixed trip count: loops bounded by a uniform fail on ANGLE.
    for (int i = 0; i < 40; i++) {
        vec3 res = texture2D(tMap, s).xyz;
        if (res.x > threshold || res.y > threshold || res.z > threshold) {
            res *= 5.0;
        } else {
            res = vec3(0.0, 0.0, 0.0);
        }
        res = smoothstep(0.0, 1.0, res);
        total += w * res;
        w *= strength;
        s += d;
    }
    total /= steps;

    vec3 dif = texture2D(tDiffuse, vUv).xyz;
    gl_FragColor = vec4(mix(total * expo, dif * 2.0, 0.5), 1.0);
}
`

// Fragment shader for the vignette
const vignetteFragmentShader = `
uniform float offset;
uniform float darkness;
uniform sampler2D tDiffuse;

varying vec2 vUv;

void main() {
    vec4 texel = texture2D(tDiffuse, vUv);
    vec2 uv = (vUv - vec2(0.5)) * vec2(offset);
    gl_FragColor = vec4(mix(texel.rgb, vec3(1.0 - darkness), dot(uv, uv)), texel.a);
}
`
